package minimax

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"checkers-local/board"
	"checkers-local/types"
)

// Search depth limits, in plies.
const (
	MinDepth = 1
	MaxDepth = 12
)

var (
	ErrDepthOutOfRange  = errors.New("search depth out of range")
	ErrTerminalPosition = errors.New("position has no legal moves")
)

// Result is what a search found at the root.
type Result struct {
	Move    board.Move
	Score   int // minimax value of Move, AI positive
	Depth   int
	Nodes   int64
	Elapsed time.Duration
}

// Searcher runs minimax with alpha-beta pruning. The AI maximizes, the human
// minimizes. Children are visited in generator order and nothing is cached
// between calls, so a search is a pure function of its inputs. A Searcher is
// never written during a search and may be shared between goroutines.
type Searcher struct {
	Weights    Weights
	ForceTakes bool
}

// search holds the state of one ChooseMove call.
type search struct {
	ctx        context.Context
	weights    Weights
	forceTakes bool
	nodes      int64
}

// NewSearcher returns a searcher with the default weights.
func NewSearcher(forceTakes bool) *Searcher {
	return &Searcher{Weights: DefaultWeights, ForceTakes: forceTakes}
}

// ChooseMove returns the successor of p with the best minimax value at the
// given depth. Ties go to the earliest successor in generator order.
func (s *Searcher) ChooseMove(ctx context.Context, p board.Position, depth int) (Result, error) {
	if depth < MinDepth || depth > MaxDepth {
		return Result{}, ErrDepthOutOfRange
	}
	moves := board.Successors(p, s.ForceTakes)
	if len(moves) == 0 {
		return Result{}, ErrTerminalPosition
	}

	start := time.Now()
	sr := &search{ctx: ctx, weights: s.Weights, forceTakes: s.ForceTakes}
	maximizing := p.SideToMove() == types.AI

	alpha, beta := -Infinity-1, Infinity+1
	best := -1
	bestScore := 0
	for i, m := range moves {
		score, err := sr.alphaBeta(m.Next, depth-1, alpha, beta)
		if err != nil {
			return Result{}, err
		}
		if best == -1 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			best, bestScore = i, score
		}
		if maximizing && bestScore > alpha {
			alpha = bestScore
		}
		if !maximizing && bestScore < beta {
			beta = bestScore
		}
	}

	res := Result{
		Move:    moves[best],
		Score:   bestScore,
		Depth:   depth,
		Nodes:   sr.nodes,
		Elapsed: time.Since(start),
	}
	log.Debug().
		Int("depth", depth).
		Int("successors", len(moves)).
		Int64("nodes", res.Nodes).
		Int("score", res.Score).
		Str("move", res.Move.String()).
		Dur("elapsed", res.Elapsed).
		Msg("search-done")
	return res, nil
}

func (s *search) alphaBeta(p board.Position, depth, alpha, beta int) (int, error) {
	s.nodes++
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	if depth == 0 {
		return s.weights.Evaluate(p), nil
	}
	moves := board.Successors(p, s.forceTakes)
	if len(moves) == 0 {
		return s.weights.Evaluate(p), nil
	}

	if p.SideToMove() == types.AI {
		value := -Infinity - 1
		for _, m := range moves {
			v, err := s.alphaBeta(m.Next, depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			if v > value {
				value = v
			}
			if value > alpha {
				alpha = value
			}
			if alpha >= beta {
				break
			}
		}
		return value, nil
	}

	value := Infinity + 1
	for _, m := range moves {
		v, err := s.alphaBeta(m.Next, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		if v < value {
			value = v
		}
		if value < beta {
			beta = value
		}
		if alpha >= beta {
			break
		}
	}
	return value, nil
}

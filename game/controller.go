// Package game runs a single checkers game between the human and the
// computer: it validates human moves, asks the search for computer moves and
// keeps the history needed for undo.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"checkers-local/board"
	"checkers-local/engine"
	"checkers-local/engine/minimax"
	"checkers-local/types"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotHumanTurn  = errors.New("not the human's turn")
	ErrNotAITurn     = errors.New("not the computer's turn")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Outcome is the result of a game.
type Outcome int

const (
	Ongoing Outcome = iota
	HumanWon
	AIWon
	Draw
)

func (o Outcome) String() string {
	switch o {
	case HumanWon:
		return "You win"
	case AIWon:
		return "Computer wins"
	case Draw:
		return "Draw by repetition"
	}
	return "Ongoing"
}

// Controller holds the current position and the stack of earlier ones.
// It is synchronous and must not be used from more than one goroutine at a
// time.
type Controller struct {
	id       uuid.UUID
	settings engine.Settings
	searcher *minimax.Searcher
	start    board.Position
	current  board.Position
	history  []HistoryEntry
	logger   zerolog.Logger
}

// New starts a game from the opening position.
func New(settings engine.Settings) (*Controller, error) {
	return NewFromPosition(settings, board.NewStartPosition(settings.FirstMove))
}

// NewFromPosition starts a game from an arbitrary position. Restart returns
// to it.
func NewFromPosition(settings engine.Settings, start board.Position) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		settings: settings,
		searcher: minimax.NewSearcher(settings.ForceTakes),
		start:    start,
	}
	c.reset()
	return c, nil
}

func (c *Controller) reset() {
	c.id = uuid.New()
	c.current = c.start
	c.history = nil
	c.logger = log.With().Str("game", c.id.String()).Logger()
	c.logger.Info().
		Int("depth", c.settings.AIDepth).
		Bool("forceTakes", c.settings.ForceTakes).
		Stringer("toMove", c.current.SideToMove()).
		Msg("game-started")
}

// ID identifies the game in logs. It changes on Restart.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

func (c *Controller) Settings() engine.Settings {
	return c.settings
}

func (c *Controller) Current() board.Position {
	return c.current
}

func (c *Controller) Turn() types.Owner {
	return c.current.SideToMove()
}

// IsOver reports whether the side to move is stuck or the position has been
// repeated often enough to be drawn.
func (c *Controller) IsOver() bool {
	return c.Outcome() != Ongoing
}

func (c *Controller) Outcome() Outcome {
	switch c.current.Winner() {
	case types.Human:
		return HumanWon
	case types.AI:
		return AIWon
	}
	if c.settings.DrawRepetitions > 0 && c.Repetitions() >= c.settings.DrawRepetitions {
		return Draw
	}
	return Ongoing
}

// Repetitions counts how many times the current position has occurred,
// itself included.
func (c *Controller) Repetitions() int {
	return 1 + lo.CountBy(c.history, func(h HistoryEntry) bool {
		return h.Before == c.current
	})
}

// ValidMovesFrom returns the legal moves of the piece on sq in generator
// order. It is empty once the game is over.
func (c *Controller) ValidMovesFrom(sq int) []board.Move {
	if c.IsOver() {
		return nil
	}
	return lo.Filter(board.Successors(c.current, c.settings.ForceTakes), func(m board.Move, _ int) bool {
		return m.From == sq
	})
}

// PlayerMove commits a human move. m is matched against the legal successors
// by its resulting position.
func (c *Controller) PlayerMove(m board.Move) error {
	if c.IsOver() {
		return ErrGameOver
	}
	if c.Turn() != types.Human {
		return ErrNotHumanTurn
	}
	legal, ok := lo.Find(board.Successors(c.current, c.settings.ForceTakes), func(s board.Move) bool {
		return s.Next == m.Next
	})
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	c.commit(legal, types.Human)
	return nil
}

// AIMove searches the current position and commits the chosen move. It
// blocks for the whole search.
func (c *Controller) AIMove(ctx context.Context) (minimax.Result, error) {
	if c.IsOver() {
		return minimax.Result{}, ErrGameOver
	}
	if c.Turn() != types.AI {
		return minimax.Result{}, ErrNotAITurn
	}
	res, err := c.searcher.ChooseMove(ctx, c.current, c.settings.AIDepth)
	if err != nil {
		return minimax.Result{}, fmt.Errorf("ai move: %w", err)
	}
	c.commit(res.Move, types.AI)
	return res, nil
}

// Undo takes back the last half-move, whoever played it.
func (c *Controller) Undo() error {
	if len(c.history) == 0 {
		return ErrNothingToUndo
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.current = last.Before
	c.logger.Debug().Str("move", last.Move.String()).Stringer("mover", last.Mover).Msg("undo")
	return nil
}

// Restart discards the game and starts again from its first position with a
// new id.
func (c *Controller) Restart() {
	c.reset()
}

func (c *Controller) commit(m board.Move, mover types.Owner) {
	c.history = append(c.history, HistoryEntry{Before: c.current, Move: m, Mover: mover})
	c.current = m.Next
	c.logger.Debug().
		Stringer("mover", mover).
		Str("move", m.String()).
		Int("ply", len(c.history)).
		Msg("move")
	if o := c.Outcome(); o != Ongoing {
		c.logger.Info().Stringer("outcome", o).Int("plies", len(c.history)).Msg("game-over")
	}
}

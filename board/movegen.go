package board

import (
	"strconv"
	"strings"

	"checkers-local/types"
)

// Move is one legal half-move. A multi-jump is a single Move whose Path lists
// every landing square; Next is the complete successor position.
type Move struct {
	From     int
	To       int
	Capture  bool
	Path     []int
	Captured []int
	Next     Position
}

func (m Move) String() string {
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	parts := make([]string, 0, len(m.Path)+1)
	parts = append(parts, strconv.Itoa(m.From))
	for _, sq := range m.Path {
		parts = append(parts, strconv.Itoa(sq))
	}
	return strings.Join(parts, sep)
}

// Successors enumerates every legal move of the side to move in a fixed
// order: source square ascending, then direction NE, NW, SE, SW, then chain
// continuations in the same direction order. With forceTakes set, steps are
// dropped as soon as any capture exists.
func Successors(p Position, forceTakes bool) []Move {
	var moves []Move
	hasCapture := false

	for _, src := range sources(p) {
		piece := p.squares[src]
		for d := 0; d < numDirs; d++ {
			if !canMove(piece, d) {
				continue
			}
			over, land := neighbor[src][d], jump[src][d]
			if over == NoSquare {
				continue
			}
			target := p.squares[over]
			switch {
			case target.IsEmpty():
				if p.chain != NoSquare {
					continue
				}
				moves = append(moves, step(p, src, over))
			case target.Owner() != piece.Owner() && land != NoSquare && p.squares[land].IsEmpty():
				hasCapture = true
				moves = appendChains(moves, p, src, src, d, nil, nil)
			}
		}
	}

	if hasCapture && forceTakes {
		captures := moves[:0]
		for _, m := range moves {
			if m.Capture {
				captures = append(captures, m)
			}
		}
		return captures
	}
	return moves
}

// HasMoves reports whether the side to move has at least one legal move.
func HasMoves(p Position) bool {
	for _, src := range sources(p) {
		piece := p.squares[src]
		for d := 0; d < numDirs; d++ {
			if !canMove(piece, d) {
				continue
			}
			over, land := neighbor[src][d], jump[src][d]
			if over == NoSquare {
				continue
			}
			target := p.squares[over]
			if target.IsEmpty() && p.chain == NoSquare {
				return true
			}
			if !target.IsEmpty() && target.Owner() != piece.Owner() && land != NoSquare && p.squares[land].IsEmpty() {
				return true
			}
		}
	}
	return false
}

func sources(p Position) []int {
	if p.chain != NoSquare {
		if pc := p.squares[p.chain]; pc.IsEmpty() || pc.Owner() != p.side {
			return nil
		}
		return []int{int(p.chain)}
	}
	out := make([]int, 0, 12)
	for sq, pc := range p.squares {
		if !pc.IsEmpty() && pc.Owner() == p.side {
			out = append(out, sq)
		}
	}
	return out
}

func step(p Position, from, to int) Move {
	next := p
	piece := next.squares[from]
	next.squares[from] = types.Empty
	next.squares[to] = crown(piece, to)
	next.side = p.side.Opponent()
	next.chain = NoSquare
	return Move{
		From: from,
		To:   to,
		Path: []int{to},
		Next: next,
	}
}

// appendChains applies the jump from cur in direction d and appends every
// complete capture chain that follows from it. origin is where the chain
// started; path and captured hold the jumps made so far.
func appendChains(moves []Move, p Position, origin, cur, d int, path, captured []int) []Move {
	over, land := neighbor[cur][d], jump[cur][d]

	next := p
	piece := next.squares[cur]
	next.squares[cur] = types.Empty
	next.squares[over] = types.Empty
	promoted := crown(piece, land)
	next.squares[land] = promoted

	path = append(path[:len(path):len(path)], land)
	captured = append(captured[:len(captured):len(captured)], over)

	if promoted == piece {
		continued := false
		for nd := 0; nd < numDirs; nd++ {
			if canJump(next, land, nd) {
				continued = true
				moves = appendChains(moves, next, origin, land, nd, path, captured)
			}
		}
		if continued {
			return moves
		}
	}

	next.side = p.side.Opponent()
	next.chain = NoSquare
	return append(moves, Move{
		From:     origin,
		To:       land,
		Capture:  true,
		Path:     path,
		Captured: captured,
		Next:     next,
	})
}

func canJump(p Position, from, d int) bool {
	piece := p.squares[from]
	if piece.IsEmpty() || !canMove(piece, d) {
		return false
	}
	over, land := neighbor[from][d], jump[from][d]
	if over == NoSquare || land == NoSquare {
		return false
	}
	target := p.squares[over]
	return !target.IsEmpty() && target.Owner() != piece.Owner() && p.squares[land].IsEmpty()
}

// crown promotes a man that lands on its promotion row.
func crown(piece types.Piece, sq int) types.Piece {
	if piece.Rank() == types.Man && sq/4 == PromotionRow(piece.Owner()) {
		return piece.Promote()
	}
	return piece
}

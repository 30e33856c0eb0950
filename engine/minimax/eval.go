// Package minimax implements the computer player: a static material evaluator
// and a depth-limited minimax search with alpha-beta pruning.
package minimax

import (
	"checkers-local/board"
	"checkers-local/types"
)

// Infinity scores a won position; nothing else comes close.
const Infinity = 1_000_000

// Weights are the material values used by the evaluator.
type Weights struct {
	Man  int
	King int
}

// DefaultWeights count a king as two men.
var DefaultWeights = Weights{Man: 1, King: 2}

// Evaluate scores p from the AI's point of view with DefaultWeights.
func Evaluate(p board.Position) int {
	return DefaultWeights.Evaluate(p)
}

// Evaluate scores p from the AI's point of view. A side with no legal move
// has lost: +Infinity when the human is stuck, -Infinity when the AI is.
func (w Weights) Evaluate(p board.Position) int {
	if !board.HasMoves(p) {
		if p.SideToMove() == types.Human {
			return Infinity
		}
		return -Infinity
	}
	return w.material(p, types.AI) - w.material(p, types.Human)
}

func (w Weights) material(p board.Position, owner types.Owner) int {
	return w.Man*p.CountPieces(owner, types.Man) + w.King*p.CountPieces(owner, types.King)
}

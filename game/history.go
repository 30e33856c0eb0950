package game

import (
	"checkers-local/board"
	"checkers-local/types"
)

// HistoryEntry is one committed half-move.
type HistoryEntry struct {
	Before board.Position
	Move   board.Move
	Mover  types.Owner
}

// History returns the committed half-moves, oldest first. The slice is a copy.
func (c *Controller) History() []HistoryEntry {
	out := make([]HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// LastMove returns the most recent half-move.
func (c *Controller) LastMove() (board.Move, bool) {
	if len(c.history) == 0 {
		return board.Move{}, false
	}
	return c.history[len(c.history)-1].Move, true
}

// MoveNumber is the number of committed half-moves.
func (c *Controller) MoveNumber() int {
	return len(c.history)
}

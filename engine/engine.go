// Package engine defines the settings of a game and the interface the UI uses
// to play against the computer.
package engine

import (
	"fmt"
	"time"

	"checkers-local/board"
	"checkers-local/engine/minimax"
	"checkers-local/types"
)

// GameEngine defines the interface for playing checkers against the computer.
type GameEngine interface {
	// Connect starts the game. If the computer moves first it starts thinking.
	Connect() error

	// GetBoardState returns a snapshot of the current game.
	GetBoardState() *BoardState

	// ValidMovesFrom returns the legal moves of the piece on sq.
	ValidMovesFrom(sq int) []board.Move

	// PlayMove commits one of the moves returned by ValidMovesFrom and starts
	// the computer's reply. Returns an error if the move is illegal or it is
	// not the human's turn.
	PlayMove(m board.Move) error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// IsThinking returns true while the computer is searching.
	IsThinking() bool

	// OnMove registers a callback for when a move is played (by either side).
	// boardState is passed directly to avoid lock contention.
	OnMove(func(m board.Move, mover types.Owner, boardState *BoardState))

	// Undo takes back moves until it is the human's turn again, normally the
	// computer's reply and the human move before it.
	Undo() error

	// Restart sets up a new game with the same settings.
	Restart() error

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close stops any running search.
	Close()
}

// Settings are the options read when a game starts.
type Settings struct {
	AIDepth         int         // search depth in plies, minimax.MinDepth..minimax.MaxDepth
	ForceTakes      bool        // captures are mandatory
	FirstMove       types.Owner // side that moves first
	DrawRepetitions int         // a position seen this many times is a draw; 0 disables
}

// DefaultMinPause keeps the computer's reply from appearing instantly.
const DefaultMinPause = 400 * time.Millisecond

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		AIDepth:         5,
		ForceTakes:      true,
		FirstMove:       types.Human,
		DrawRepetitions: 3,
	}
}

type InvalidSettings struct {
	err string
}

func (e *InvalidSettings) Error() string {
	return fmt.Sprintf("Settings error: %s", e.err)
}

func (s Settings) Validate() error {
	if s.AIDepth < minimax.MinDepth || s.AIDepth > minimax.MaxDepth {
		return &InvalidSettings{fmt.Sprintf("AI depth %d out of range %d-%d", s.AIDepth, minimax.MinDepth, minimax.MaxDepth)}
	}
	if s.FirstMove != types.Human && s.FirstMove != types.AI {
		return &InvalidSettings{"first move must be human or ai"}
	}
	if s.DrawRepetitions < 0 {
		return &InvalidSettings{"draw repetitions cannot be negative"}
	}
	return nil
}

// BoardState is a snapshot of a game for drawing.
type BoardState struct {
	Position   board.Position
	MoveNumber int
	Phase      string // "playing", "finished"
	Outcome    string
	LastMove   *board.Move
	Moves      []string // PDN notation of every committed half-move
	Settings   Settings
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == "finished"
}

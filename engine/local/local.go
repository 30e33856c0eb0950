// Package local runs the computer player in-process. It wraps a game
// controller so the UI can play without blocking on the search.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"checkers-local/board"
	"checkers-local/engine"
	"checkers-local/game"
	"checkers-local/pdn"
	"checkers-local/types"
)

var ErrEngineBusy = errors.New("computer is thinking")

// Engine implements engine.GameEngine on top of a game.Controller.
//
// ctrlMu guards the controller and is held for the whole computer search.
// stateMu guards the published snapshot, so drawing never waits on a search.
// When both are needed ctrlMu is taken first.
type Engine struct {
	ctrl     *game.Controller
	minPause time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ctrlMu sync.Mutex

	stateMu    sync.RWMutex
	boardState *engine.BoardState
	myTurn     bool
	gameOver   bool
	thinking   bool

	moveCallback func(m board.Move, mover types.Owner, boardState *engine.BoardState)
	endCallback  func(outcome string)
}

// New creates an engine for ctrl. minPause is the shortest time between the
// start of a computer search and its move being published.
func New(ctrl *game.Controller, minPause time.Duration) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		ctrl:     ctrl,
		minPause: minPause,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Connect publishes the starting position and lets the computer move if it
// goes first.
func (e *Engine) Connect() error {
	e.ctrlMu.Lock()
	defer e.ctrlMu.Unlock()
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("engine closed: %w", err)
	}
	e.publish()
	if e.claimAIMove() {
		go e.triggerAIMove()
	}
	return nil
}

// GetBoardState returns the last published snapshot.
func (e *Engine) GetBoardState() *engine.BoardState {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.boardState
}

// ValidMovesFrom returns nothing while the computer is thinking.
func (e *Engine) ValidMovesFrom(sq int) []board.Move {
	if e.IsThinking() {
		return nil
	}
	e.ctrlMu.Lock()
	defer e.ctrlMu.Unlock()
	return e.ctrl.ValidMovesFrom(sq)
}

// PlayMove commits a human move and starts the computer's reply.
func (e *Engine) PlayMove(m board.Move) error {
	if e.IsThinking() {
		return ErrEngineBusy
	}
	e.ctrlMu.Lock()

	if err := e.ctrl.PlayerMove(m); err != nil {
		e.ctrlMu.Unlock()
		return err
	}
	log.Debug().Str("move", pdn.FormatMove(m)).Msg("human-move")

	boardState := e.publish()
	over := e.ctrl.IsOver()
	reply := e.claimAIMove()
	e.ctrlMu.Unlock()

	// Notify callbacks outside the locks
	if e.moveCallback != nil {
		e.moveCallback(m, types.Human, boardState)
	}
	if over && e.endCallback != nil {
		e.endCallback(boardState.Outcome)
	}

	if reply {
		go e.triggerAIMove()
	}
	return nil
}

// claimAIMove marks the engine as thinking when the computer is to move and
// reports whether the caller must start triggerAIMove.
// Must be called while holding ctrlMu.
func (e *Engine) claimAIMove() bool {
	if e.ctrl.IsOver() || e.ctrl.Turn() != types.AI {
		return false
	}
	e.stateMu.Lock()
	e.thinking = true
	e.stateMu.Unlock()
	e.wg.Add(1)
	return true
}

// triggerAIMove runs the search and publishes its move.
func (e *Engine) triggerAIMove() {
	defer e.wg.Done()
	e.ctrlMu.Lock()

	start := time.Now()
	res, err := e.ctrl.AIMove(e.ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("ai-move-failed")
		}
		e.stateMu.Lock()
		e.thinking = false
		e.stateMu.Unlock()
		e.ctrlMu.Unlock()
		return
	}

	if wait := e.minPause - time.Since(start); wait > 0 {
		select {
		case <-time.After(wait):
		case <-e.ctx.Done():
		}
	}

	boardState := e.publish()
	over := e.ctrl.IsOver()
	e.ctrlMu.Unlock()

	log.Debug().
		Str("move", pdn.FormatMove(res.Move)).
		Int("score", res.Score).
		Int64("nodes", res.Nodes).
		Msg("ai-move")

	if e.moveCallback != nil {
		e.moveCallback(res.Move, types.AI, boardState)
	}
	if over && e.endCallback != nil {
		e.endCallback(boardState.Outcome)
	}
}

// publish rebuilds the snapshot from the controller and clears the thinking
// flag. Must be called while holding ctrlMu.
func (e *Engine) publish() *engine.BoardState {
	history := e.ctrl.History()
	moves := lo.Map(history, func(h game.HistoryEntry, _ int) board.Move {
		return h.Move
	})

	boardState := &engine.BoardState{
		Position:   e.ctrl.Current(),
		MoveNumber: len(history),
		Phase:      "playing",
		Moves:      pdn.FormatMoves(moves),
		Settings:   e.ctrl.Settings(),
	}
	if last, ok := e.ctrl.LastMove(); ok {
		boardState.LastMove = &last
	}
	over := e.ctrl.IsOver()
	if over {
		boardState.Phase = "finished"
		boardState.Outcome = e.ctrl.Outcome().String()
	}

	e.stateMu.Lock()
	e.boardState = boardState
	e.myTurn = !over && e.ctrl.Turn() == types.Human
	e.gameOver = over
	e.thinking = false
	e.stateMu.Unlock()
	return boardState
}

// IsMyTurn returns true if it's the human player's turn.
func (e *Engine) IsMyTurn() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.myTurn && !e.gameOver && !e.thinking
}

func (e *Engine) IsThinking() bool {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.thinking
}

// Undo takes back half-moves until the human is to move. If the game began
// with the computer to move and everything is taken back, the computer plays
// again.
func (e *Engine) Undo() error {
	if e.IsThinking() {
		return ErrEngineBusy
	}
	e.ctrlMu.Lock()
	defer e.ctrlMu.Unlock()

	if err := e.ctrl.Undo(); err != nil {
		return err
	}
	for e.ctrl.Turn() != types.Human {
		if err := e.ctrl.Undo(); err != nil {
			break
		}
	}
	log.Debug().Int("ply", e.ctrl.MoveNumber()).Msg("undo")
	e.publish()
	if e.claimAIMove() {
		go e.triggerAIMove()
	}
	return nil
}

// Restart starts a new game with the same settings.
func (e *Engine) Restart() error {
	if e.IsThinking() {
		return ErrEngineBusy
	}
	e.ctrlMu.Lock()
	defer e.ctrlMu.Unlock()

	e.ctrl.Restart()
	e.publish()
	if e.claimAIMove() {
		go e.triggerAIMove()
	}
	return nil
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(m board.Move, mover types.Owner, boardState *engine.BoardState)) {
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(outcome string)) {
	e.endCallback = callback
}

// Close cancels a running search and waits for it to stop.
func (e *Engine) Close() {
	e.cancel()
	e.wg.Wait()
}

var _ engine.GameEngine = (*Engine)(nil)

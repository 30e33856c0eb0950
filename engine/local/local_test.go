package local

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"checkers-local/board"
	"checkers-local/engine"
	"checkers-local/game"
	"checkers-local/types"
)

func TestMain(m *testing.M) {
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

type moveEvent struct {
	move  board.Move
	mover types.Owner
	state *engine.BoardState
}

func newEngine(t *testing.T, s engine.Settings, start *board.Position, pause time.Duration) (*Engine, chan moveEvent, chan string) {
	t.Helper()
	var ctrl *game.Controller
	var err error
	if start != nil {
		ctrl, err = game.NewFromPosition(s, *start)
	} else {
		ctrl, err = game.New(s)
	}
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	e := New(ctrl, pause)
	moves := make(chan moveEvent, 16)
	ends := make(chan string, 4)
	e.OnMove(func(m board.Move, mover types.Owner, bs *engine.BoardState) {
		moves <- moveEvent{m, mover, bs}
	})
	e.OnGameEnd(func(outcome string) {
		ends <- outcome
	})
	t.Cleanup(e.Close)
	return e, moves, ends
}

func waitMove(t *testing.T, moves chan moveEvent) moveEvent {
	t.Helper()
	select {
	case ev := <-moves:
		return ev
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a move")
	}
	return moveEvent{}
}

func lowDepth() engine.Settings {
	s := engine.DefaultSettings()
	s.AIDepth = 2
	return s
}

func TestHumanMoveThenReply(t *testing.T) {
	is := is.New(t)
	e, moves, _ := newEngine(t, lowDepth(), nil, 0)
	is.NoErr(e.Connect())

	is.True(e.IsMyTurn())
	is.True(!e.IsThinking())
	is.Equal(e.GetBoardState().Position, board.NewStartPosition(types.Human))

	legal := e.ValidMovesFrom(10)
	is.True(len(legal) > 0)
	is.NoErr(e.PlayMove(legal[0]))

	ev := waitMove(t, moves)
	is.Equal(ev.mover, types.Human)
	is.Equal(ev.state.MoveNumber, 1)
	is.Equal(ev.state.Moves, []string{"11-16"})

	ev = waitMove(t, moves)
	is.Equal(ev.mover, types.AI)
	is.Equal(ev.state.MoveNumber, 2)
	is.Equal(len(ev.state.Moves), 2)
	is.True(ev.state.LastMove != nil)
	is.Equal(ev.state.LastMove.Next, ev.state.Position)

	is.True(e.IsMyTurn())
	is.Equal(e.GetBoardState(), ev.state)
}

func TestComputerMovesFirst(t *testing.T) {
	is := is.New(t)
	s := lowDepth()
	s.FirstMove = types.AI
	e, moves, _ := newEngine(t, s, nil, 0)
	is.NoErr(e.Connect())

	ev := waitMove(t, moves)
	is.Equal(ev.mover, types.AI)
	is.True(e.IsMyTurn())

	// Taking back the only move lets the computer play again.
	is.NoErr(e.Undo())
	ev = waitMove(t, moves)
	is.Equal(ev.mover, types.AI)
	is.Equal(ev.state.MoveNumber, 1)
}

func TestBusyWhileThinking(t *testing.T) {
	is := is.New(t)
	e, moves, _ := newEngine(t, lowDepth(), nil, 300*time.Millisecond)
	is.NoErr(e.Connect())

	is.NoErr(e.PlayMove(e.ValidMovesFrom(9)[0]))
	waitMove(t, moves) // human

	is.True(e.IsThinking())
	is.True(!e.IsMyTurn())
	is.Equal(len(e.ValidMovesFrom(8)), 0)
	is.True(errors.Is(e.Undo(), ErrEngineBusy))
	is.True(errors.Is(e.Restart(), ErrEngineBusy))
	is.True(errors.Is(e.PlayMove(board.Move{}), ErrEngineBusy))

	waitMove(t, moves) // computer
	is.True(!e.IsThinking())
}

func TestUndoBackToHumanTurn(t *testing.T) {
	is := is.New(t)
	e, moves, _ := newEngine(t, lowDepth(), nil, 0)
	is.NoErr(e.Connect())

	is.True(errors.Is(e.Undo(), game.ErrNothingToUndo))

	is.NoErr(e.PlayMove(e.ValidMovesFrom(11)[0]))
	waitMove(t, moves)
	waitMove(t, moves)

	is.NoErr(e.Undo())
	state := e.GetBoardState()
	is.Equal(state.MoveNumber, 0)
	is.Equal(state.Position, board.NewStartPosition(types.Human))
	is.Equal(len(state.Moves), 0)
	is.True(e.IsMyTurn())
}

func TestIllegalMoveRejected(t *testing.T) {
	is := is.New(t)
	e, _, _ := newEngine(t, lowDepth(), nil, 0)
	is.NoErr(e.Connect())

	other := board.Successors(board.NewStartPosition(types.AI), true)[0]
	is.True(errors.Is(e.PlayMove(other), game.ErrIllegalMove))
	is.True(e.IsMyTurn())
}

func TestGameEnd(t *testing.T) {
	is := is.New(t)
	start := board.NewPosition(types.Human).
		WithPiece(13, types.MakePiece(types.Human, types.Man)).
		WithPiece(17, types.MakePiece(types.AI, types.Man)).
		WithPiece(26, types.MakePiece(types.AI, types.Man))
	e, moves, ends := newEngine(t, lowDepth(), &start, 0)
	is.NoErr(e.Connect())

	is.NoErr(e.PlayMove(e.ValidMovesFrom(13)[0]))
	ev := waitMove(t, moves)
	is.True(ev.state.Finished())

	select {
	case outcome := <-ends:
		is.Equal(outcome, game.HumanWon.String())
	case <-time.After(5 * time.Second):
		t.Fatal("no game end")
	}
	is.True(!e.IsMyTurn())
	is.True(!e.IsThinking())
	is.Equal(len(e.ValidMovesFrom(31)), 0)
}

func TestRestart(t *testing.T) {
	is := is.New(t)
	e, moves, _ := newEngine(t, lowDepth(), nil, 0)
	is.NoErr(e.Connect())

	is.NoErr(e.PlayMove(e.ValidMovesFrom(8)[0]))
	waitMove(t, moves)
	waitMove(t, moves)

	is.NoErr(e.Restart())
	is.Equal(e.GetBoardState().MoveNumber, 0)
	is.True(e.IsMyTurn())
}

func TestCloseStopsSearch(t *testing.T) {
	is := is.New(t)
	s := engine.DefaultSettings()
	s.AIDepth = 12
	s.FirstMove = types.AI
	e, _, _ := newEngine(t, s, nil, 0)
	is.NoErr(e.Connect())
	is.True(e.IsThinking())

	done := make(chan struct{})
	go func() {
		e.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Close did not stop the search")
	}
	is.True(!e.IsThinking())
	is.True(e.Connect() != nil)
}

package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/samber/lo"

	"checkers-local/board"
	"checkers-local/config"
	"checkers-local/engine"
	"checkers-local/game"
	"checkers-local/types"
)

// Cell width on screen. Three columns keep the squares roughly square.
const cellWidth = 3

// Width and height of the drawn board including coordinates.
const (
	boardScreenWidth  = board.Size*cellWidth + 4
	boardScreenHeight = board.Size + 2
)

// CheckerBoardUI draws the board and turns cursor input into moves.
//
// The board is drawn turned half way around so the human's men start at the
// bottom. The cursor lives in screen coordinates.
type CheckerBoardUI struct {
	Box        *tview.Box
	BoardState *engine.BoardState
	hint       *tview.TextView
	app        *tview.Application
	eng        engine.GameEngine
	palette    boardPalette
	infoPanel  *GameInfoPanel
	finished   bool
	focusMode  bool
	curRow     int
	curCol     int
	selected   int
	targets    []board.Move
	message    string
}

func NewCheckerBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *CheckerBoardUI {
	g := &CheckerBoardUI{
		Box:        tview.NewBox(),
		BoardState: &engine.BoardState{Position: board.NewStartPosition(types.Human)},
		hint:       hint,
		app:        app,
		curRow:     -1,
		curCol:     -1,
		selected:   board.NoSquare,
	}
	g.SetConfig(c)
	g.Box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		g.draw(screen, x, y)
		return x, y, boardScreenWidth, boardScreenHeight
	})
	return g
}

func (g *CheckerBoardUI) SetConfig(c *config.Config) {
	g.palette = newBoardPalette(c.Theme)
}

// toScreen maps a grid row and column to screen row and column.
func toScreen(row, col int) (int, int) {
	return board.Size - 1 - row, board.Size - 1 - col
}

// squareUnder returns the square under a screen cell, or board.NoSquare.
func squareUnder(sr, sc int) int {
	return board.SquareAt(board.Size-1-sr, board.Size-1-sc)
}

// CursorSquare returns the square under the cursor, or board.NoSquare.
func (g *CheckerBoardUI) CursorSquare() int {
	if g.curRow < 0 {
		return board.NoSquare
	}
	return squareUnder(g.curRow, g.curCol)
}

// MoveCursor moves the cursor by dr rows and dc columns on screen. The first
// call places it on the last move, or near the human's side.
func (g *CheckerBoardUI) MoveCursor(dr, dc int) {
	if g.finished {
		return
	}
	if g.curRow < 0 {
		g.curRow, g.curCol = 5, 2
		if last := g.BoardState.LastMove; last != nil {
			row, col := board.RowCol(last.To)
			g.curRow, g.curCol = toScreen(row, col)
		}
		return
	}
	r, c := g.curRow+dr, g.curCol+dc
	if r < 0 || r >= board.Size || c < 0 || c >= board.Size {
		return
	}
	g.curRow, g.curCol = r, c
}

// ResetSelection drops the selected piece, and the cursor when nothing was
// selected. It reports whether anything changed.
func (g *CheckerBoardUI) ResetSelection() bool {
	if g.selected != board.NoSquare {
		g.clearSelection()
		g.refreshHint()
		return true
	}
	if g.curRow >= 0 {
		g.curRow, g.curCol = -1, -1
		return true
	}
	return false
}

func (g *CheckerBoardUI) clearSelection() {
	g.selected = board.NoSquare
	g.targets = nil
}

// Activate acts on the square under the cursor: it selects one of the human's
// pieces, or plays the selected piece to a highlighted square.
func (g *CheckerBoardUI) Activate() {
	if g.finished || g.eng == nil {
		return
	}
	sq := g.CursorSquare()
	if sq == board.NoSquare {
		return
	}
	g.message = ""

	if g.selected != board.NoSquare {
		// Moves reaching the same square are told apart by generation order.
		if m, ok := lo.Find(g.targets, func(m board.Move) bool { return m.To == sq }); ok {
			g.play(m)
			return
		}
	}

	piece := g.BoardState.Position.PieceAt(sq)
	if piece.IsEmpty() || piece.Owner() != types.Human || sq == g.selected {
		g.clearSelection()
		g.refreshHint()
		return
	}
	if !g.eng.IsMyTurn() {
		g.message = "Wait for the computer to move"
		g.refreshHint()
		return
	}
	moves := g.eng.ValidMovesFrom(sq)
	if len(moves) == 0 {
		g.clearSelection()
		g.message = "That piece has no legal move"
		if g.BoardState.Settings.ForceTakes {
			g.message += " (a capture may be required)"
		}
		g.refreshHint()
		return
	}
	g.selected = sq
	g.targets = moves
	g.refreshHint()
}

func (g *CheckerBoardUI) play(m board.Move) {
	g.clearSelection()
	if err := g.eng.PlayMove(m); err != nil {
		g.message = describeError(err)
	}
	g.refreshHint()
}

// ConnectEngine connects the board to a game engine.
func (g *CheckerBoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.message = ""
	g.clearSelection()
	g.eng = e

	// Both callbacks can run on the engine's goroutine. The snapshot is
	// re-read on the UI goroutine so late callbacks never show a stale board.
	e.OnMove(func(m board.Move, mover types.Owner, boardState *engine.BoardState) {
		go g.app.QueueUpdateDraw(g.sync)
	})
	e.OnGameEnd(func(outcome string) {
		go g.app.QueueUpdateDraw(g.sync)
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.sync()
	return nil
}

// sync pulls the engine's latest snapshot. Call only on the UI goroutine.
func (g *CheckerBoardUI) sync() {
	if g.eng == nil {
		return
	}
	g.BoardState = g.eng.GetBoardState()
	g.finished = g.BoardState.Finished()
	if g.finished {
		g.clearSelection()
		g.curRow, g.curCol = -1, -1
	}
	g.refreshHint()
}

// Undo takes back the last human move and the reply to it.
func (g *CheckerBoardUI) Undo() {
	if g.eng == nil {
		return
	}
	g.clearSelection()
	g.message = ""
	if err := g.eng.Undo(); err != nil {
		g.message = describeError(err)
	}
	g.sync()
}

// Restart begins a new game with the same settings.
func (g *CheckerBoardUI) Restart() {
	if g.eng == nil {
		return
	}
	g.clearSelection()
	g.message = ""
	if err := g.eng.Restart(); err != nil {
		g.message = describeError(err)
	}
	g.sync()
}

// Close disconnects the engine.
func (g *CheckerBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
	g.eng = nil
}

func (g *CheckerBoardUI) IsFinished() bool {
	return g.finished
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *CheckerBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

func (g *CheckerBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

func describeError(err error) string {
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		return "Illegal move"
	case errors.Is(err, game.ErrNothingToUndo):
		return "Nothing to undo"
	case errors.Is(err, game.ErrGameOver):
		return "The game is over"
	case errors.Is(err, game.ErrNotHumanTurn):
		return "Not your turn"
	}
	return err.Error()
}

func (g *CheckerBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var status string
	switch {
	case g.finished:
		status = fmt.Sprintf("  ■ %s   u undo · r new game · q menu", g.BoardState.Outcome)
	case g.message != "":
		status = "  ! " + g.message
	case g.eng != nil && g.eng.IsThinking():
		status = "  ◌ Thinking..."
	case g.selected != board.NoSquare:
		status = fmt.Sprintf("  ● Square %d selected, pick a destination", g.selected+1)
	default:
		status = "  ● Your move"
	}
	controls := "  hjkl/↑↓←→ move · ⏎ select/play · esc clear · u undo · r restart · f focus · ? help · q quit"
	g.hint.SetText(status + "\n" + controls)
}

func (g *CheckerBoardUI) draw(screen tcell.Screen, x, y int) {
	if g.BoardState == nil {
		return
	}
	left := x + 3
	pos := g.BoardState.Position
	p := g.palette

	targetSquares := lo.Map(g.targets, func(m board.Move, _ int) int { return m.To })
	lastFrom, lastTo := board.NoSquare, board.NoSquare
	if last := g.BoardState.LastMove; last != nil {
		lastFrom, lastTo = last.From, last.To
	}

	for sr := 0; sr < board.Size; sr++ {
		for sc := 0; sc < board.Size; sc++ {
			sq := squareUnder(sr, sc)
			bg := p.light
			if sq != board.NoSquare {
				bg = p.dark
			}

			var fg tcell.Color
			text := "   "
			if sq != board.NoSquare {
				piece := pos.PieceAt(sq)
				switch {
				case !piece.IsEmpty():
					fg = p.pieceColor(piece.Owner())
					text = " " + string(p.pieceRune(piece)) + " "
				case lo.Contains(targetSquares, sq):
					fg = p.target
					text = " " + string(p.dot) + " "
				case p.squareNumbers:
					fg = p.coordinates
					text = fmt.Sprintf("%2d ", sq+1)
				}

				switch {
				case sq == g.selected:
					bg = p.selected
				case p.drawLastMoveBG && (sq == lastFrom || sq == lastTo):
					bg = p.lastMove
				}
			}
			if sr == g.curRow && sc == g.curCol {
				if p.drawCursorBG {
					bg = p.cursor
				} else if text == "   " {
					text = "[ ]"
					fg = p.cursor
				}
			}
			putString(screen, left+sc*cellWidth, y+sr, text, tcell.StyleDefault.Background(bg).Foreground(fg))
		}
	}
	g.drawCoordinates(screen, x, y)
}

func (g *CheckerBoardUI) drawCoordinates(screen tcell.Screen, x, y int) {
	left := x + 3
	style := tcell.StyleDefault.Foreground(g.palette.coordinates)
	highlight := tcell.StyleDefault.Background(g.palette.cursor)

	for sc := 0; sc < board.Size; sc++ {
		s := style
		if sc == g.curCol {
			s = highlight
		}
		putString(screen, left+sc*cellWidth, y+board.Size, " "+string(rune('a'+sc))+" ", s)
	}
	for sr := 0; sr < board.Size; sr++ {
		s := style
		if sr == g.curRow {
			s = highlight
		}
		putString(screen, x+1, y+sr, strconv.Itoa(board.Size-sr), s)
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"checkers-local/engine"
	"checkers-local/types"
)

// movePairsShown is how many numbered move pairs fit beside the board.
const movePairsShown = 10

// GameInfoPanel displays the game settings, material and move list alongside
// the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *engine.BoardState
}

func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}
	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)
	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

func (p *GameInfoPanel) SetBoardState(state *engine.BoardState) {
	p.boardState = state
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}
	bs := p.boardState
	pos := bs.Position

	var b strings.Builder
	b.WriteString("[white::b]Game[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]Depth:[-:-:-] %d\n", bs.Settings.AIDepth)
	fmt.Fprintf(&b, "[white]Captures:[-:-:-] %s\n", choose(bs.Settings.ForceTakes, "forced", "optional"))
	fmt.Fprintf(&b, "[white]Move:[-:-:-] %d\n", bs.MoveNumber)

	b.WriteString("\n[white::b]Pieces[-:-:-]\n")
	b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&b, "[white]You:[-:-:-]      %2d men %d kings\n",
		pos.CountPieces(types.Human, types.Man), pos.CountPieces(types.Human, types.King))
	fmt.Fprintf(&b, "[white]Computer:[-:-:-] %2d men %d kings\n",
		pos.CountPieces(types.AI, types.Man), pos.CountPieces(types.AI, types.King))

	if len(bs.Moves) > 0 {
		b.WriteString("\n[white::b]Moves[-:-:-]\n")
		b.WriteString("[dimgray]──────────────────────[-:-:-]\n")
		b.WriteString(formatMovePairs(bs.Moves, movePairsShown))
	}

	if bs.Finished() {
		fmt.Fprintf(&b, "\n[yellow::b]%s[-:-:-]\n", bs.Outcome)
	}
	p.box.SetText(b.String())
}

// choose picks between two labels.
func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// formatMovePairs numbers half-moves two to a line and keeps the last
// maxPairs lines.
func formatMovePairs(moves []string, maxPairs int) string {
	var lines []string
	for i := 0; i < len(moves); i += 2 {
		line := fmt.Sprintf("[dimgray]%3d.[-] %-9s", i/2+1, moves[i])
		if i+1 < len(moves) {
			line += " " + moves[i+1]
		}
		lines = append(lines, line)
	}
	hidden := 0
	if len(lines) > maxPairs {
		hidden = len(lines) - maxPairs
		lines = lines[hidden:]
	}
	text := strings.Join(lines, "\n") + "\n"
	if hidden > 0 {
		text = fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", hidden) + text
	}
	return text
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *CheckerBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// RebuildNormalLayout restores the board, info panel and status bar.
func RebuildNormalLayout(gameFrame *tview.Flex, board *CheckerBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	if board.BoardState != nil {
		infoPanel.SetBoardState(board.BoardState)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(nil, 1, 0, false)
	boardRow.AddItem(board.Box, boardScreenWidth+2, 0, true)
	boardRow.AddItem(infoPanel.Box(), 0, 1, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout shows only the board, centered.
func BuildFocusLayout(gameFrame *tview.Flex, board *CheckerBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardScreenWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)
	gameFrame.AddItem(centerRow, boardScreenHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
	gameFrame.AddItem(hint, 3, 0, false)
}

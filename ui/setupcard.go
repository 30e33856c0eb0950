// Package ui holds the tview screens and widgets for playing checkers in the
// terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"checkers-local/engine"
	"checkers-local/engine/minimax"
	"checkers-local/types"
)

const (
	setupCardWidth  = 58
	setupCardHeight = 20
)

// GameSetupUI is the new-game card: search depth, who moves first, forced
// captures and the start/quit buttons.
type GameSetupUI struct {
	*tview.Box
	title    string
	settings engine.Settings

	depth      *LevelSlider
	firstMove  *RadioSelect
	forceTakes *Toggle
	buttons    *ButtonRow

	widgets []menuWidget
	focus   int
}

// NewGameSetup creates the setup card pre-filled with defaults.
func NewGameSetup(defaults engine.Settings, onStart func(engine.Settings), onQuit func()) *GameSetupUI {
	s := &GameSetupUI{
		Box:      tview.NewBox(),
		title:    "C H E C K E R S",
		settings: defaults,
	}

	s.depth = NewLevelSlider("Depth", minimax.MinDepth, minimax.MaxDepth, defaults.AIDepth, depthHint, func(v int) {
		s.settings.AIDepth = v
	})

	first := 0
	if defaults.FirstMove == types.AI {
		first = 1
	}
	s.firstMove = NewRadioSelect("First move", []RadioOption{
		{Label: "You", Description: "(dark men, bottom)"},
		{Label: "Computer"},
	}, first, func(i int) {
		s.settings.FirstMove = types.Human
		if i == 1 {
			s.settings.FirstMove = types.AI
		}
	})

	s.forceTakes = NewToggle("Forced captures", defaults.ForceTakes, func(on bool) {
		s.settings.ForceTakes = on
	})

	s.buttons = NewButtonRow(
		NewMenuButton("Start", true, func() { onStart(s.settings) }),
		NewMenuButton("Quit", false, onQuit),
	)

	s.widgets = []menuWidget{s.depth, s.firstMove, s.forceTakes, s.buttons}
	s.setFocus(0)
	return s
}

func depthHint(d int) string {
	switch {
	case d <= 2:
		return "casual"
	case d <= 5:
		return "club"
	case d <= 8:
		return "strong"
	}
	return "slow"
}

// Settings returns what the card currently shows.
func (s *GameSetupUI) Settings() engine.Settings {
	return s.settings
}

func (s *GameSetupUI) setFocus(i int) {
	n := len(s.widgets)
	s.focus = (i + n) % n
	for j, w := range s.widgets {
		w.SetFocused(j == s.focus)
	}
}

// InputHandler moves between rows with Tab/Shift+Tab (and Up/Down outside the
// radio group) and hands every other key to the focused row.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			s.setFocus(s.focus + 1)
			return
		case tcell.KeyBacktab:
			s.setFocus(s.focus - 1)
			return
		case tcell.KeyEnter:
			if s.widgets[s.focus] != s.buttons && s.widgets[s.focus] != s.forceTakes {
				s.setFocus(len(s.widgets) - 1)
				return
			}
		}
		if s.widgets[s.focus].HandleKey(event) {
			return
		}
		switch event.Key() {
		case tcell.KeyDown:
			s.setFocus(s.focus + 1)
		case tcell.KeyUp:
			s.setFocus(s.focus - 1)
		}
	})
}

// Draw centers the card in the available area.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)
	ox, oy, ow, oh := s.GetInnerRect()

	width, height := setupCardWidth, setupCardHeight
	if width > ow {
		width = ow
	}
	if height > oh {
		height = oh
	}
	x, y := ox+(ow-width)/2, oy+(oh-height)/2
	if width < 10 || height < 5 {
		return
	}

	drawCard(screen, x, y, width, height, s.title, true)

	row := y + 6
	for i, w := range s.widgets {
		if i == len(s.widgets)-1 {
			drawDivider(screen, x, y+height-4, width, true)
			row = y + height - 2
		}
		row += w.Draw(screen, x+3, row, width-6) + 1
	}

	hint := "tab/↑↓ move · ←→ change · ⏎ start"
	putString(screen, x+(width-len([]rune(hint)))/2, y+height, hint, tcell.StyleDefault.Foreground(MenuColors.Hint))
}

// drawCard draws a filled card with rounded borders and a title bar.
func drawCard(screen tcell.Screen, x, y, width, height int, title string, focused bool) {
	borderColor := MenuColors.Border
	if focused {
		borderColor = MenuColors.BorderFocus
	}
	border := cardStyle(borderColor)
	bg := cardStyle(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bg)
		}
	}
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, border)
		screen.SetContent(col, y+height-1, '─', nil, border)
	}
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, border)
		screen.SetContent(x+width-1, row, '│', nil, border)
	}
	screen.SetContent(x, y, '╭', nil, border)
	screen.SetContent(x+width-1, y, '╮', nil, border)
	screen.SetContent(x, y+height-1, '╰', nil, border)
	screen.SetContent(x+width-1, y+height-1, '╯', nil, border)

	if title == "" {
		return
	}
	full := fmt.Sprintf("⛂  %s", title)
	tx := x + (width-len([]rune(full)))/2
	screen.SetContent(tx, y+2, '⛂', nil, cardStyle(MenuColors.TitleAccent))
	putString(screen, tx+3, y+2, title, cardStyle(MenuColors.Title).Bold(true))
	drawDivider(screen, x, y+4, width, focused)
}

func drawDivider(screen tcell.Screen, x, y, width int, focused bool) {
	borderColor := MenuColors.Border
	if focused {
		borderColor = MenuColors.BorderFocus
	}
	border := cardStyle(borderColor)
	screen.SetContent(x, y, '├', nil, border)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, border)
	}
	screen.SetContent(x+width-1, y, '┤', nil, border)
}

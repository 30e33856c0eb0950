package ui

import (
	"github.com/gdamore/tcell/v2"

	"checkers-local/config"
	"checkers-local/types"
)

// MenuColors is the palette of the setup card and dialogs.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(95),
	BorderFocus: tcell.PaletteColor(173),
	CardBG:      tcell.PaletteColor(235),
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(167), // red, like the computer's men on a real board
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(244),
	Selected:    tcell.PaletteColor(173),
	Unselected:  tcell.PaletteColor(244),
	ButtonFocus: tcell.PaletteColor(173),
	ButtonText:  tcell.PaletteColor(232),
}

// boardPalette is the configured board theme resolved to tcell values.
type boardPalette struct {
	light, dark    tcell.Color
	human, ai      tcell.Color
	cursor         tcell.Color
	selected       tcell.Color
	target         tcell.Color
	lastMove       tcell.Color
	coordinates    tcell.Color
	man, king, dot rune

	drawCursorBG   bool
	drawLastMoveBG bool
	squareNumbers  bool
}

func newBoardPalette(t config.Theme) boardPalette {
	return boardPalette{
		light:          tcell.PaletteColor(t.Colors.LightSquare),
		dark:           tcell.PaletteColor(t.Colors.DarkSquare),
		human:          tcell.PaletteColor(t.Colors.HumanPiece),
		ai:             tcell.PaletteColor(t.Colors.AIPiece),
		cursor:         tcell.PaletteColor(t.Colors.CursorBG),
		selected:       tcell.PaletteColor(t.Colors.SelectedBG),
		target:         tcell.PaletteColor(t.Colors.TargetFG),
		lastMove:       tcell.PaletteColor(t.Colors.LastMoveBG),
		coordinates:    tcell.PaletteColor(t.Colors.Coordinates),
		man:            t.Symbols.Man,
		king:           t.Symbols.King,
		dot:            t.Symbols.Target,
		drawCursorBG:   t.DrawCursorBackground,
		drawLastMoveBG: t.DrawLastMoveBackground,
		squareNumbers:  t.ShowSquareNumbers,
	}
}

func (p boardPalette) pieceColor(o types.Owner) tcell.Color {
	if o == types.AI {
		return p.ai
	}
	return p.human
}

func (p boardPalette) pieceRune(pc types.Piece) rune {
	if pc.Rank() == types.King {
		return p.king
	}
	return p.man
}

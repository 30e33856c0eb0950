package config

import "checkers-local/engine"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:   true,
		DrawLastMoveBackground: true,
		ShowSquareNumbers:      false,
		Colors: ConfigColors{
			LightSquare: 180,
			DarkSquare:  94,
			HumanPiece:  232,
			AIPiece:     255,
			CursorBG:    4,
			SelectedBG:  3,
			TargetFG:    2,
			LastMoveBG:  58,
			Coordinates: 244,
		},
		Symbols: ConfigSymbols{
			Man:    '●',
			King:   '♛',
			Target: '·',
		},
	}

	settings := engine.DefaultSettings()
	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameConfig{
			AIDepth:         settings.AIDepth,
			ForceTakes:      settings.ForceTakes,
			FirstMove:       settings.FirstMove.String(),
			DrawRepetitions: settings.DrawRepetitions,
			AIMinPauseMs:    int(engine.DefaultMinPause.Milliseconds()),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// checkers-local is a terminal application to play checkers against the
// computer offline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"checkers-local/board"
	"checkers-local/config"
	"checkers-local/engine"
	"checkers-local/engine/local"
	"checkers-local/engine/minimax"
	"checkers-local/game"
	"checkers-local/pdn"
	"checkers-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagDepth      = flag.Int("depth", 0, "Search depth in plies (1-12)")
	flagFirst      = flag.String("first", "", "Who moves first (human or ai)")
	flagForceTakes = flag.Bool("force-takes", true, "Captures are mandatory")
	flagFEN        = flag.String("fen", "", "Start from a PDN FEN position, e.g. B:B1-12:W21-32")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagBestMove   = flag.Bool("bestmove", false, "Print the computer's move for -fen and exit")
	flagLogLevel   = flag.String("loglevel", "", "Log level (debug, info, warn, error)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.CheckerBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("checkers-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagLogLevel != "" {
		cfg.Log.Level = *flagLogLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	settings, err := settingsFromFlags(cfg.Settings())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var start *board.Position
	if *flagFEN != "" {
		pos, err := pdn.ParseFEN(*flagFEN)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		settings.FirstMove = pos.SideToMove()
		start = &pos
	}

	if *flagBestMove {
		setupConsoleLogging(cfg.LogLevel())
		if err := printBestMove(settings, start); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	closeLog, err := setupFileLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %s\n", err)
	} else {
		defer closeLog()
	}

	quickStart := *flagQuickStart || *flagFEN != "" || *flagFocus || *flagDepth > 0 || *flagFirst != ""

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⛂ checkers ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewCheckerBoard(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(handleGameKey)

	setupUI := ui.NewGameSetup(settings,
		func(s engine.Settings) {
			startGame(s, nil)
		},
		func() {
			app.Stop()
		},
	)

	rootPage.AddPage("setup", setupUI, true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)

	if quickStart {
		startGame(settings, start)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard, gameHint)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		log.Error().Err(err).Msg("ui-stopped")
		gameBoard.Close()
		panic(err)
	}
	gameBoard.Close()
}

func handleGameKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEsc {
		gameBoard.ResetSelection()
		return nil
	}
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveCursor(-1, 0)
	case tcell.KeyDown:
		gameBoard.MoveCursor(1, 0)
	case tcell.KeyLeft:
		gameBoard.MoveCursor(0, -1)
	case tcell.KeyRight:
		gameBoard.MoveCursor(0, 1)
	case tcell.KeyEnter:
		gameBoard.Activate()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveCursor(0, -1)
		case 'j':
			gameBoard.MoveCursor(1, 0)
		case 'k':
			gameBoard.MoveCursor(-1, 0)
		case 'l':
			gameBoard.MoveCursor(0, 1)
		case 'u':
			gameBoard.Undo()
		case 'r':
			if gameBoard.IsFinished() {
				gameBoard.Restart()
				return nil
			}
			ui.ShowConfirm(rootPage, "restart", "Abandon this game and start again?", gameBoard.Restart)
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard, gameHint)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		case '?':
			ui.ShowHelp(rootPage)
		case 'q':
			if gameBoard.ResetSelection() {
				return nil
			}
			if gameBoard.IsFinished() {
				backToMenu()
				return nil
			}
			ui.ShowConfirm(rootPage, "quit", "Leave this game?", backToMenu)
		}
	}
	return event
}

func backToMenu() {
	gameBoard.Close()
	rootPage.SwitchToPage("setup")
}

// startGame starts a game with the given settings, from start when it is set.
func startGame(settings engine.Settings, start *board.Position) {
	var (
		ctrl *game.Controller
		err  error
	)
	if start != nil {
		ctrl, err = game.NewFromPosition(settings, *start)
	} else {
		ctrl, err = game.New(settings)
	}
	if err == nil {
		gameBoard.Close()
		err = gameBoard.ConnectEngine(local.New(ctrl, cfg.MinPause()))
	}
	if err != nil {
		log.Error().Err(err).Msg("start-game")
		ui.ShowMessage(rootPage, "error", fmt.Sprintf("Failed to start game:\n%s", err.Error()))
		return
	}

	if start == nil && settings != cfg.Settings() {
		cfg.SetSettings(settings)
		if err := cfg.Save(); err != nil {
			log.Warn().Err(err).Msg("save-config")
		}
	}
	rootPage.SwitchToPage("gameview")
}

// settingsFromFlags applies the flags the user set on top of defaults.
func settingsFromFlags(defaults engine.Settings) (engine.Settings, error) {
	s := defaults
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			s.AIDepth = *flagDepth
		case "first":
			s.FirstMove, err = config.ParseOwner(*flagFirst)
		case "force-takes":
			s.ForceTakes = *flagForceTakes
		}
	})
	if err != nil {
		return s, err
	}
	return s, s.Validate()
}

// printBestMove searches the -fen position, or the opening, and prints the
// move in PDN.
func printBestMove(settings engine.Settings, start *board.Position) error {
	pos := board.NewStartPosition(settings.FirstMove)
	if start != nil {
		pos = *start
	}
	searcher := minimax.NewSearcher(settings.ForceTakes)
	res, err := searcher.ChooseMove(context.Background(), pos, settings.AIDepth)
	if err != nil {
		return err
	}
	fmt.Println(pdn.FormatMove(res.Move))
	return nil
}

// setupFileLogging sends logs to the configured file. The terminal belongs to
// the UI while it runs.
func setupFileLogging(c *config.Config) (func(), error) {
	zerolog.SetGlobalLevel(c.LogLevel())
	path, err := c.LogPath()
	if err != nil {
		log.Logger = zerolog.Nop()
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	log.Info().Str("version", Version).Msg("startup")
	return func() { f.Close() }, nil
}

func setupConsoleLogging(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

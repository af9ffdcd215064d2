// termchess is a terminal application to play chess against another person at the same keyboard.
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

	"termchess/config"
	"termchess/engine"
	"termchess/engine/actor"
	"termchess/logging"
	"termchess/types"
	"termchess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagClock      = flag.Int("clock", 0, "Seconds on each side's clock")
	flagLogLevel   = flag.String("loglevel", "", "Log level (debug, info, warn, error)")
	flagFEN        = flag.String("fen", "", "Start from a FEN piece placement instead of the initial position")
	flagBlack      = flag.Bool("black", false, "Black moves first (with -fen)")
	flagInitConfig = flag.Bool("init-config", false, "Write the default config file and exit")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

// pollsPerRefresh is how many ticks pass between snapshot requests that keep the clocks current.
const pollsPerRefresh = 20

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termchess %s\n", Version)
		return
	}

	if *flagInitConfig {
		path, err := config.DefaultConfig.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not write config: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, logFile, err := logging.New(cfg.Engine.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging disabled: %s\n", err)
		log = zerolog.Nop()
	} else {
		defer logFile.Close()
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("termchess exited with error")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) {
	if *flagClock > 0 {
		cfg.Engine.ClockSeconds = *flagClock
	}
	if *flagLogLevel != "" {
		cfg.Engine.LogLevel = *flagLogLevel
	}
}

func gameConfig(cfg *config.Config) engine.GameConfig {
	gameCfg := engine.DefaultConfig()
	gameCfg.ClockTime = time.Duration(cfg.Engine.ClockSeconds) * time.Second
	gameCfg.Placement = *flagFEN
	if *flagBlack {
		gameCfg.Turn = types.Black
	}
	return gameCfg
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	requests, responses, err := actor.Start(ctx, gameConfig(cfg), log)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	app := tview.NewApplication()
	frame := tview.NewFlex()
	frame.SetBorder(true).SetTitle(" ♞ termchess ")
	frame.SetBorderColor(ui.PanelColors.Border)
	frame.SetTitleColor(ui.PanelColors.Title)

	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)
	hint.SetBorderColor(ui.PanelColors.Border)
	hint.SetTextColor(ui.PanelColors.Hint)

	board := ui.NewChessBoard(cfg, hint, log)
	frame.AddItem(ui.CreateGameLayout(board, hint), 0, 1, true)
	board.ConnectEngine(requests, responses)

	board.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			board.MoveCursor(1, 0)
		case tcell.KeyDown:
			board.MoveCursor(-1, 0)
		case tcell.KeyLeft:
			board.MoveCursor(0, -1)
		case tcell.KeyRight:
			board.MoveCursor(0, 1)
		case tcell.KeyEnter:
			board.Select()
		case tcell.KeyEsc:
			board.ResetSelection()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				board.MoveCursor(0, -1)
			case 'j':
				board.MoveCursor(-1, 0)
			case 'k':
				board.MoveCursor(1, 0)
			case 'l':
				board.MoveCursor(0, 1)
			case ' ':
				board.Select()
			case 'q':
				board.Close()
				app.Stop()
				return nil
			}
		}
		return event
	})

	done := make(chan struct{})
	go tick(app, board, time.Duration(cfg.Engine.TickMillis)*time.Millisecond, done)

	err = app.SetRoot(frame, true).Run()
	close(done)
	return err
}

// tick drives the board: it drains engine responses and periodically asks for a fresh snapshot.
func tick(app *tview.Application, board *ui.ChessBoardUI, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	n := 0
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			n++
			refresh := n%pollsPerRefresh == 0
			app.QueueUpdateDraw(func() {
				if refresh {
					board.RequestState()
				}
				board.PollEngine()
			})
		}
	}
}

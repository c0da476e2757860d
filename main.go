package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"snake-ai/config"
	"snake-ai/game"
	"snake-ai/server"
	"snake-ai/store"
	"snake-ai/tui"
	"snake-ai/ui"
)

// Rounds in headless mode are cut off after this many ticks
const headlessTickCap = 20000

func main() {
	os.Exit(run())
}

// run wires everything up and returns the exit code once every deferred
// collaborator has been closed
func run() int {
	cfg, err := config.Load("snake-ai", os.Args[1:], os.Getenv, os.Stderr)
	if config.IsHelp(err) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 2
	}

	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()
	logger := func(component string) *log.Logger {
		return log.New(logOut, "["+component+"] ", log.LstdFlags)
	}
	mainLog := logger("main")

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	policy, _ := cfg.TargetPolicy() // checked by Validate

	g := game.New(game.Options{
		Seed:       cfg.Seed,
		Policy:     policy,
		Autopilot:  cfg.Autopilot,
		HighScores: store.NewHighScoreFile(cfg.HighScorePath),
		Logger:     logger("game"),
	})
	mainLog.Printf("Seed %d, policy %v, front end %s", cfg.Seed, g.Policy(), cfg.Frontend)

	var history *store.History
	if cfg.History {
		history, err = store.OpenHistory(cfg.HistoryPath(), logger("history"))
		if err != nil {
			mainLog.Printf("Round history disabled: %v", err)
		} else {
			defer func() {
				if err := history.Close(); err != nil {
					mainLog.Printf("Closing round history: %v", err)
				}
			}()
			g.Subscribe(history)
		}
	}

	if cfg.Record {
		rec, err := store.NewRecorder(cfg.RecordsDir(), logger("recorder"))
		if err != nil {
			mainLog.Printf("Recording disabled: %v", err)
		} else {
			defer func() {
				if err := rec.Close(); err != nil {
					mainLog.Printf("Closing recorder: %v", err)
				}
			}()
			g.Subscribe(rec)
		}
	}

	if cfg.SpectateAddr != "" {
		opts := server.Options{Addr: cfg.SpectateAddr, Logger: logger("server")}
		if history != nil {
			opts.History = history
		}
		if cfg.Record {
			opts.RecordsDir = cfg.RecordsDir()
		}
		srv := server.New(opts)
		srv.Publish(g.Snapshot())
		g.Subscribe(srv)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				mainLog.Printf("Spectator server shutdown: %v", err)
			}
		}()
	}

	switch cfg.Frontend {
	case config.FrontendHeadless:
		runHeadless(g, cfg.Rounds)
	case config.FrontendTerminal:
		session := game.NewSession(g, cfg.Tick(), false)
		if err := tui.Run(session, tui.Options{Mute: cfg.Mute, Logger: logger("tui")}); err != nil {
			mainLog.Printf("Terminal front end failed: %v", err)
			fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
			return 1
		}
	default:
		session := game.NewSession(g, cfg.Tick(), false)
		ui.Run(session, ui.WindowOptions{
			CellSize:  cfg.CellSize,
			Offset:    cfg.Offset,
			AssetsDir: cfg.AssetsDir,
			Mute:      cfg.Mute,
			Logger:    logger("ui"),
		})
	}
	return 0
}

func runHeadless(g *game.Game, rounds int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := game.RunHeadless(ctx, g, rounds, headlessTickCap)
	s := store.Summarize(results)

	fmt.Printf("Rounds played: %d\n", s.Rounds)
	fmt.Printf("Best score:    %d\n", s.MaxScore)
	fmt.Printf("Average score: %.2f\n", s.AverageScore)
	fmt.Printf("Median score:  %.1f\n", s.MedianScore)
	fmt.Printf("Average ticks: %.1f\n", s.AverageTicks)
	fmt.Printf("High score:    %d\n", g.HighScore())
}

// logOutput sends logs to stderr, except in terminal mode where they would
// corrupt the screen and go to a file under the data dir instead
func logOutput(cfg config.Config) (io.Writer, func(), error) {
	if cfg.Frontend != config.FrontendTerminal {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

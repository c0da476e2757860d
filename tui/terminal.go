package tui

import (
	"fmt"
	"log"
	"time"

	"snake-ai/game"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// Options configures the terminal front end
type Options struct {
	Mute   bool
	Logger *log.Logger
}

// Run takes over the terminal and drives the session until the player quits
func Run(session *game.Session, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	if !opts.Mute {
		beeper := NewBeeper(opts.Logger)
		defer beeper.Close()
		session.Game().Subscribe(beeper)
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	loop(session, NewRenderer(screen, session.Game().Grid()), events, ticker.C)
	return nil
}

// loop multiplexes input and frame ticks until the session quits or
// either channel closes
func loop(session *game.Session, r *Renderer, events <-chan tcell.Event, frames <-chan time.Time) {
	r.Draw(session.Screen(), session.Game().Snapshot())
	for !session.Quit() {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				session.Handle(commandFor(ev), time.Now())
			case *tcell.EventResize:
				r.screen.Sync()
			}

		case now, ok := <-frames:
			if !ok {
				return
			}
			session.Advance(now)
			r.Draw(session.Screen(), session.Game().Snapshot())
		}
	}
}

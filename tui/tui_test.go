package tui

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"snake-ai/game"
	"snake-ai/game/entity"
	"snake-ai/game/types"

	"github.com/gdamore/tcell/v2"
)

func newTestSession(t *testing.T) *game.Session {
	t.Helper()
	g := game.New(game.Options{Seed: 3, Logger: log.New(io.Discard, "", 0)})
	return game.NewSession(g, 200*time.Millisecond, false)
}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func glyphAt(screen tcell.Screen, p types.Point) rune {
	x, y := CellOrigin(p)
	ch, _, _, _ := screen.GetContent(x, y)
	return ch
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Command
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.CmdUp},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.CmdLeft},
		{"wasd", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.CmdRight},
		{"upper case", tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), game.CmdDown},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.CmdToggleAutopilot},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.CmdStart},
		{"restart", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), game.CmdRestart},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.CmdQuit},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandFor(tt.ev); got != tt.want {
				t.Errorf("commandFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRendererBoard(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	s := newTestSession(t)
	snap := s.Game().Snapshot()

	NewRenderer(screen, s.Game().Grid()).Draw(game.ScreenPlaying, snap)

	if got := row(screen, 0); !strings.HasPrefix(got, "Score: 0") {
		t.Errorf("HUD row = %q", got)
	}
	head, _ := snap.Head()
	if got := glyphAt(screen, head); got != headGlyphs[snap.Direction] {
		t.Errorf("head glyph = %q", got)
	}
	for _, p := range snap.Body[1:] {
		if got := glyphAt(screen, p); got != '█' {
			t.Errorf("body glyph at %v = %q", p, got)
		}
	}
	for _, e := range snap.Entities {
		if got := glyphAt(screen, e.Pos); got != kindGlyphs[e.Kind].r {
			t.Errorf("%v at %v drawn as %q", e.Kind, e.Pos, got)
		}
	}
	if ch, _, _, _ := screen.GetContent(0, 1); ch != '┌' {
		t.Errorf("border corner = %q", ch)
	}
}

func TestRendererScreens(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	s := newTestSession(t)
	r := NewRenderer(screen, s.Game().Grid())

	r.Draw(game.ScreenMenu, s.Game().Snapshot())
	if got := row(screen, 1); !strings.Contains(got, "Welcome to AI Snake Game") {
		t.Errorf("menu title row = %q", got)
	}

	r.Draw(game.ScreenGameOver, s.Game().Snapshot())
	if got := row(screen, 3); !strings.Contains(got, "Game Over!") {
		t.Errorf("game over row = %q", got)
	}
}

func TestRendererTooSmall(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	s := newTestSession(t)

	NewRenderer(screen, s.Game().Grid()).Draw(game.ScreenPlaying, s.Game().Snapshot())

	if got := row(screen, 0); !strings.HasPrefix(got, "Terminal too small") {
		t.Errorf("row 0 = %q", got)
	}
}

func TestLoop(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	s := newTestSession(t)
	events := make(chan tcell.Event)
	frames := make(chan time.Time)
	done := make(chan struct{})

	go func() {
		loop(s, NewRenderer(screen, s.Game().Grid()), events, frames)
		close(done)
	}()

	events <- tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	frames <- time.Now().Add(time.Hour)
	events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not return after quit")
	}
	if s.Screen() != game.ScreenPlaying {
		t.Errorf("screen = %v", s.Screen())
	}
	if tick := s.Game().Snapshot().Tick; tick != 1 {
		t.Errorf("tick = %d, want 1", tick)
	}
}

func TestToneFor(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		want Tone
		ok   bool
	}{
		{"eat", game.Event{Type: game.EventConsume, Kind: entity.Growth}, eatTone, true},
		{"shrink", game.Event{Type: game.EventConsume, Kind: entity.Shrink}, hitTone, true},
		{"collide", game.Event{Type: game.EventCollide, Reason: game.ReasonWall}, hitTone, true},
		{"tick", game.Event{Type: game.EventTick}, Tone{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToneFor(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToneFor = %v,%v want %v,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

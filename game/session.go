package game

import (
	"time"

	"snake-ai/game/types"
)

// Screen is what a front end shows
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlaying
	ScreenGameOver
)

// Command is a player intent decoded by a front end
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdToggleAutopilot
	CmdStart
	CmdRestart
	CmdQuit
)

var commandDirections = map[Command]types.Direction{
	CmdUp:    types.Up,
	CmdDown:  types.Down,
	CmdLeft:  types.Left,
	CmdRight: types.Right,
}

// Session runs the menu, play and game-over screens around a Game
type Session struct {
	game   *Game
	clock  *Clock
	screen Screen
	quit   bool
}

// NewSession starts on the menu. skipMenu goes straight to play.
func NewSession(g *Game, interval time.Duration, skipMenu bool) *Session {
	s := &Session{game: g, clock: NewClock(interval)}
	if skipMenu {
		s.screen = ScreenPlaying
	}
	return s
}

// Handle applies one command. Commands that mean nothing on the current
// screen are ignored.
func (s *Session) Handle(cmd Command, now time.Time) {
	if cmd == CmdQuit {
		s.quit = true
		return
	}

	switch s.screen {
	case ScreenMenu:
		if cmd == CmdStart {
			s.screen = ScreenPlaying
			s.clock.Reset(now)
		}
	case ScreenPlaying:
		if cmd == CmdToggleAutopilot {
			s.game.ToggleAutopilot()
			return
		}
		// Arrow keys are ignored while the autopilot drives
		if dir, ok := commandDirections[cmd]; ok && !s.game.Autopilot() {
			s.game.RequestDirection(dir)
		}
	case ScreenGameOver:
		if cmd == CmdRestart {
			s.game.Restart()
			s.screen = ScreenPlaying
			s.clock.Reset(now)
		}
	}
}

// Advance ticks the game when the clock is due. Returns true if it ticked.
func (s *Session) Advance(now time.Time) bool {
	if s.screen != ScreenPlaying || !s.clock.Due(now) {
		return false
	}
	s.game.Tick()
	if s.game.Phase() == Terminated {
		s.screen = ScreenGameOver
	}
	return true
}

func (s *Session) Screen() Screen { return s.screen }

func (s *Session) Quit() bool { return s.quit }

func (s *Session) Game() *Game { return s.game }

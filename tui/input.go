package tui

import (
	"unicode"

	"snake-ai/game"

	"github.com/gdamore/tcell/v2"
)

var keyCommands = map[tcell.Key]game.Command{
	tcell.KeyUp:     game.CmdUp,
	tcell.KeyDown:   game.CmdDown,
	tcell.KeyLeft:   game.CmdLeft,
	tcell.KeyRight:  game.CmdRight,
	tcell.KeyEnter:  game.CmdStart,
	tcell.KeyEscape: game.CmdQuit,
	tcell.KeyCtrlC:  game.CmdQuit,
}

var runeCommands = map[rune]game.Command{
	'w': game.CmdUp,
	's': game.CmdDown,
	'a': game.CmdLeft,
	'd': game.CmdRight,
	' ': game.CmdToggleAutopilot,
	'r': game.CmdRestart,
	'q': game.CmdQuit,
}

// commandFor decodes a key press; unknown keys give CmdNone
func commandFor(ev *tcell.EventKey) game.Command {
	if ev.Key() == tcell.KeyRune {
		return runeCommands[unicode.ToLower(ev.Rune())]
	}
	return keyCommands[ev.Key()]
}

package ui

import (
	"snake-ai/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var keyCommands = []struct {
	key int32
	cmd game.Command
}{
	{rl.KeyUp, game.CmdUp},
	{rl.KeyW, game.CmdUp},
	{rl.KeyDown, game.CmdDown},
	{rl.KeyS, game.CmdDown},
	{rl.KeyLeft, game.CmdLeft},
	{rl.KeyA, game.CmdLeft},
	{rl.KeyRight, game.CmdRight},
	{rl.KeyD, game.CmdRight},
	{rl.KeySpace, game.CmdToggleAutopilot},
	{rl.KeyEnter, game.CmdStart},
	{rl.KeyR, game.CmdRestart},
	{rl.KeyQ, game.CmdQuit},
}

// PollCommands returns the commands for keys pressed since the last frame.
// ESC is handled by raylib through WindowShouldClose.
func PollCommands() []game.Command {
	var cmds []game.Command
	for _, kc := range keyCommands {
		if rl.IsKeyPressed(kc.key) {
			cmds = append(cmds, kc.cmd)
		}
	}
	return cmds
}

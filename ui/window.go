package ui

import (
	"log"
	"time"

	"snake-ai/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const title = "Snake AI Game"

// WindowOptions configures the raylib front end
type WindowOptions struct {
	CellSize  int
	Offset    int
	AssetsDir string
	Mute      bool
	Logger    *log.Logger
}

// Run opens the window and drives the session until the window closes or
// the player quits. It must run on the main goroutine.
func Run(session *game.Session, opts WindowOptions) {
	g := session.Game()
	renderer := NewRenderer(g.Grid(), opts.CellSize, opts.Offset, opts.Logger)

	width, height := renderer.WindowSize()
	rl.InitWindow(width, height, title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer.LoadTextures(opts.AssetsDir)
	defer renderer.Unload()

	if !opts.Mute {
		sounds := LoadSounds(opts.AssetsDir, opts.Logger)
		defer sounds.Close()
		g.Subscribe(sounds)
	}

	for !rl.WindowShouldClose() && !session.Quit() {
		now := time.Now()
		for _, cmd := range PollCommands() {
			session.Handle(cmd, now)
		}
		session.Advance(now)
		renderer.Draw(session.Screen(), g.Snapshot())
	}
}

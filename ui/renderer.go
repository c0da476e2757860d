package ui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"snake-ai/game"
	"snake-ai/game/entity"
	"snake-ai/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	background = rl.Color{R: 173, G: 204, B: 96, A: 255}
	darkGreen  = rl.Color{R: 43, G: 51, B: 24, A: 255}
)

// textureFiles maps each kind to its sprite under the assets dir
var textureFiles = map[entity.Kind]string{
	entity.Standard: filepath.Join("Graphics", "food.png"),
	entity.Growth:   filepath.Join("Graphics", "growth.png"),
	entity.Shrink:   filepath.Join("Graphics", "shrink.png"),
	entity.Negative: filepath.Join("Graphics", "negative.png"),
}

// kindColors stand in for missing sprites and colour the menu legend
var kindColors = map[entity.Kind]rl.Color{
	entity.Standard: rl.Black,
	entity.Growth:   rl.Blue,
	entity.Shrink:   rl.Orange,
	entity.Negative: rl.Red,
}

type Renderer struct {
	grid     types.Grid
	cellSize int32
	offset   int32
	textures map[entity.Kind]rl.Texture2D
	logger   *log.Logger
}

func NewRenderer(grid types.Grid, cellSize, offset int, logger *log.Logger) *Renderer {
	return &Renderer{
		grid:     grid,
		cellSize: int32(cellSize),
		offset:   int32(offset),
		textures: make(map[entity.Kind]rl.Texture2D),
		logger:   logger,
	}
}

// WindowSize is the square window that fits the board and its margins
func (r *Renderer) WindowSize() (int32, int32) {
	return 2*r.offset + r.cellSize*int32(r.grid.Width), 2*r.offset + r.cellSize*int32(r.grid.Height)
}

// LoadTextures loads entity sprites. Missing files fall back to coloured cells.
// Must be called after the window exists.
func (r *Renderer) LoadTextures(assetsDir string) {
	for kind, name := range textureFiles {
		path := filepath.Join(assetsDir, name)
		if _, err := os.Stat(path); err != nil {
			r.logger.Printf("No sprite for %v food, drawing a plain cell: %v", kind, err)
			continue
		}
		r.textures[kind] = rl.LoadTexture(path)
	}
}

func (r *Renderer) Unload() {
	for kind, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, kind)
	}
}

// Draw renders one frame for the given screen
func (r *Renderer) Draw(screen game.Screen, snap game.Snapshot) {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	switch screen {
	case game.ScreenMenu:
		r.drawMenu()
	case game.ScreenGameOver:
		r.drawGameOver(snap)
	default:
		r.drawBoard(snap)
		r.drawHUD(snap)
	}

	rl.EndDrawing()
}

func (r *Renderer) drawMenu() {
	x, y := r.offset, r.offset
	rl.DrawText("Welcome to AI Snake Game", x, y-40, 30, darkGreen)
	rl.DrawText("Rules:", x, y, 25, rl.Black)
	for i, line := range game.Rules {
		rl.DrawText(line.Text, x, y+30*int32(i+1), 20, kindColors[line.Kind])
	}
	rl.DrawText("Press ENTER to Start", x, y+180, 25, rl.DarkGray)
}

func (r *Renderer) drawGameOver(snap game.Snapshot) {
	r.drawCentered("Game Over!", r.offset+100, 40, rl.Red)
	r.drawCentered(fmt.Sprintf("Total Score: %d", snap.Score), r.offset+150, 25, rl.DarkGray)
	r.drawCentered(fmt.Sprintf("High Score: %d", snap.HighScore), r.offset+180, 25, darkGreen)
	r.drawCentered(game.ReasonLine(snap.Reason), r.offset+210, 20, rl.DarkGray)
	r.drawCentered("Press R to Restart or ESC to Exit", r.offset+250, 25, rl.DarkGray)
}

func (r *Renderer) drawCentered(text string, y, fontSize int32, color rl.Color) {
	width, _ := r.WindowSize()
	rl.DrawText(text, (width-rl.MeasureText(text, fontSize))/2, y, fontSize, color)
}

func (r *Renderer) drawBoard(snap game.Snapshot) {
	boardW := float32(r.cellSize * int32(r.grid.Width))
	boardH := float32(r.cellSize * int32(r.grid.Height))
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(r.offset) - 5, Y: float32(r.offset) - 5, Width: boardW + 10, Height: boardH + 10},
		5, darkGreen)

	// Planned route, drawn under everything else
	if snap.Autopilot {
		quarter := r.cellSize / 4
		for _, p := range snap.Path {
			x, y := r.cellOrigin(p)
			rl.DrawRectangle(x+quarter+quarter/2, y+quarter+quarter/2, quarter, quarter, rl.Fade(darkGreen, 0.4))
		}
	}

	for _, e := range snap.Entities {
		x, y := r.cellOrigin(e.Pos)
		if tex, ok := r.textures[e.Kind]; ok && tex.ID != 0 {
			rl.DrawTexture(tex, x, y, rl.White)
			continue
		}
		rl.DrawRectangle(x, y, r.cellSize, r.cellSize, kindColors[e.Kind])
	}

	for _, p := range snap.Body {
		rl.DrawRectangleRounded(r.cellRect(p), 0.5, 8, darkGreen)
	}
	if head, ok := snap.Head(); ok {
		r.drawHeadIndicator(head, snap.Direction)
	}
}

// drawHeadIndicator points a small triangle the way the snake is heading
func (r *Renderer) drawHeadIndicator(head types.Point, dir types.Direction) {
	x, y := r.cellOrigin(head)
	fx, fy, cell := float32(x), float32(y), float32(r.cellSize)
	half, inset := cell/2, cell/4

	var a, b, c rl.Vector2
	switch dir {
	case types.Right:
		a, b, c = rl.Vector2{X: fx + cell - inset, Y: fy + half}, rl.Vector2{X: fx + half, Y: fy + inset}, rl.Vector2{X: fx + half, Y: fy + cell - inset}
	case types.Left:
		a, b, c = rl.Vector2{X: fx + inset, Y: fy + half}, rl.Vector2{X: fx + half, Y: fy + cell - inset}, rl.Vector2{X: fx + half, Y: fy + inset}
	case types.Down:
		a, b, c = rl.Vector2{X: fx + half, Y: fy + cell - inset}, rl.Vector2{X: fx + cell - inset, Y: fy + half}, rl.Vector2{X: fx + inset, Y: fy + half}
	case types.Up:
		a, b, c = rl.Vector2{X: fx + half, Y: fy + inset}, rl.Vector2{X: fx + inset, Y: fy + half}, rl.Vector2{X: fx + cell - inset, Y: fy + half}
	default:
		return
	}
	// raylib wants counter-clockwise vertices
	rl.DrawTriangle(a, b, c, background)
}

func (r *Renderer) drawHUD(snap game.Snapshot) {
	below := r.offset + r.cellSize*int32(r.grid.Height) + 10
	rl.DrawText(fmt.Sprintf("Score: %d", snap.Score), r.offset, below, 25, rl.Black)
	rl.DrawText(game.CounterLine(snap.Counters), r.offset+250, below, 20, rl.DarkGray)
	rl.DrawText(game.ModeLine(snap.Autopilot), r.offset+300, 20, 20, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("High Score: %d", snap.HighScore), r.offset, 20, 20, darkGreen)
}

func (r *Renderer) cellOrigin(p types.Point) (int32, int32) {
	return r.offset + int32(p.X)*r.cellSize, r.offset + int32(p.Y)*r.cellSize
}

func (r *Renderer) cellRect(p types.Point) rl.Rectangle {
	x, y := r.cellOrigin(p)
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(r.cellSize), Height: float32(r.cellSize)}
}

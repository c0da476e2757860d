package tui

import (
	"fmt"

	"snake-ai/game"
	"snake-ai/game/entity"
	"snake-ai/game/types"

	"github.com/gdamore/tcell/v2"
)

// Each board cell is two columns wide so the board looks square
const cellWidth = 2

// Board origin inside the terminal, leaving a HUD row above
const (
	boardX = 0
	boardY = 1
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorOliveDrab)
	styleSnake   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var kindGlyphs = map[entity.Kind]struct {
	r     rune
	style tcell.Style
}{
	entity.Standard: {'●', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	entity.Growth:   {'◆', tcell.StyleDefault.Foreground(tcell.ColorBlue)},
	entity.Shrink:   {'▼', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	entity.Negative: {'✖', tcell.StyleDefault.Foreground(tcell.ColorRed)},
}

var headGlyphs = map[types.Direction]rune{
	types.Up:    '▲',
	types.Right: '▶',
	types.Down:  '▼',
	types.Left:  '◀',
	types.None:  '■',
}

// Renderer draws sessions onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	grid   types.Grid
}

func NewRenderer(screen tcell.Screen, grid types.Grid) *Renderer {
	return &Renderer{screen: screen, grid: grid}
}

// MinSize is the smallest terminal that fits the board, its border and the HUD
func (r *Renderer) MinSize() (int, int) {
	return r.grid.Width*cellWidth + 2, r.grid.Height + 2 + 3
}

func (r *Renderer) Draw(screen game.Screen, snap game.Snapshot) {
	r.screen.Clear()

	w, h := r.screen.Size()
	minW, minH := r.MinSize()
	if w < minW || h < minH {
		r.text(0, 0, fmt.Sprintf("Terminal too small, need %dx%d", minW, minH), styleAlert)
		r.screen.Show()
		return
	}

	switch screen {
	case game.ScreenMenu:
		r.drawMenu()
	case game.ScreenGameOver:
		r.drawGameOver(snap)
	default:
		r.drawBoard(snap)
		r.drawHUD(snap)
	}

	r.screen.Show()
}

func (r *Renderer) drawMenu() {
	r.text(2, 1, "Welcome to AI Snake Game", styleTitle)
	r.text(2, 3, "Rules:", styleDefault)
	for i, line := range game.Rules {
		r.text(2, 4+i, line.Text, kindGlyphs[line.Kind].style)
	}
	r.text(2, 5+len(game.Rules), "Arrows or WASD steer, SPACE toggles the autopilot", styleDim)
	r.text(2, 7+len(game.Rules), "Press ENTER to Start", styleDefault)
}

func (r *Renderer) drawGameOver(snap game.Snapshot) {
	lines := []struct {
		text  string
		style tcell.Style
	}{
		{"Game Over!", styleAlert},
		{fmt.Sprintf("Total Score: %d", snap.Score), styleDefault},
		{fmt.Sprintf("High Score: %d", snap.HighScore), styleTitle},
		{game.ReasonLine(snap.Reason), styleDim},
		{"Press R to Restart or ESC to Exit", styleDefault},
	}
	w, _ := r.screen.Size()
	for i, l := range lines {
		r.text((w-len([]rune(l.text)))/2, 3+i*2, l.text, l.style)
	}
}

func (r *Renderer) drawBoard(snap game.Snapshot) {
	right := boardX + r.grid.Width*cellWidth + 1
	bottom := boardY + r.grid.Height + 1
	for x := boardX + 1; x < right; x++ {
		r.screen.SetContent(x, boardY, '─', nil, styleBorder)
		r.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := boardY + 1; y < bottom; y++ {
		r.screen.SetContent(boardX, y, '│', nil, styleBorder)
		r.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	r.screen.SetContent(boardX, boardY, '┌', nil, styleBorder)
	r.screen.SetContent(right, boardY, '┐', nil, styleBorder)
	r.screen.SetContent(boardX, bottom, '└', nil, styleBorder)
	r.screen.SetContent(right, bottom, '┘', nil, styleBorder)

	if snap.Autopilot {
		for _, p := range snap.Path {
			r.cell(p, '·', stylePath)
		}
	}
	for _, e := range snap.Entities {
		g := kindGlyphs[e.Kind]
		r.cell(e.Pos, g.r, g.style)
	}
	for i, p := range snap.Body {
		if i == 0 {
			r.cell(p, headGlyphs[snap.Direction], styleHead)
			continue
		}
		r.cell(p, '█', styleSnake)
	}
}

func (r *Renderer) drawHUD(snap game.Snapshot) {
	r.text(0, 0, fmt.Sprintf("Score: %d  High Score: %d", snap.Score, snap.HighScore), styleDefault)
	below := boardY + r.grid.Height + 2
	r.text(0, below, game.CounterLine(snap.Counters), styleDim)
	r.text(0, below+1, game.ModeLine(snap.Autopilot), styleDim)
}

// cell draws a glyph in the left column of a board cell
func (r *Renderer) cell(p types.Point, ch rune, style tcell.Style) {
	if !r.grid.Contains(p) {
		return
	}
	x, y := CellOrigin(p)
	r.screen.SetContent(x, y, ch, nil, style)
}

// CellOrigin returns the terminal column and row of a board cell
func CellOrigin(p types.Point) (int, int) {
	return boardX + 1 + p.X*cellWidth, boardY + 1 + p.Y
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

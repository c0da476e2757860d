package types

import "time"

// Game constants
const (
	GridSize     = 25                     // Cells per side
	TickInterval = 200 * time.Millisecond // Simulation step
)

// Point is a cell coordinate on the grid
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// DefaultGrid returns the standard 25x25 board
func DefaultGrid() Grid {
	return Grid{Width: GridSize, Height: GridSize}
}

// Cells returns the number of cells on the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Contains reports whether p lies inside [0,Width)x[0,Height)
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Index encodes an in-bounds point as y*Width+x. Callers must check Contains first.
func (g Grid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// PointAt decodes an index produced by Index
func (g Grid) PointAt(i int) Point {
	return Point{X: i % g.Width, Y: i / g.Width}
}

// Manhattan returns |a.x-b.x| + |a.y-b.y|
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package types

// Occupancy is a bitmap of cells covered by the snake body, keyed by Grid.Index
type Occupancy struct {
	grid  Grid
	cells []bool
}

// NewOccupancy builds the occupancy set for body. Out-of-bounds segments are ignored.
func NewOccupancy(grid Grid, body []Point) *Occupancy {
	o := &Occupancy{grid: grid, cells: make([]bool, grid.Cells())}
	for _, p := range body {
		o.Add(p)
	}
	return o
}

// Add marks p as occupied
func (o *Occupancy) Add(p Point) {
	if o.grid.Contains(p) {
		o.cells[o.grid.Index(p)] = true
	}
}

// Has reports whether p is occupied
func (o *Occupancy) Has(p Point) bool {
	return o.grid.Contains(p) && o.cells[o.grid.Index(p)]
}

// Count returns the number of occupied cells
func (o *Occupancy) Count() int {
	n := 0
	for _, c := range o.cells {
		if c {
			n++
		}
	}
	return n
}

// Walkable reports whether p is inside the grid and not occupied
func (g Grid) Walkable(p Point, occ *Occupancy) bool {
	if !g.Contains(p) {
		return false
	}
	return occ == nil || !occ.Has(p)
}

// WalkableBody is Walkable against a raw body slice, O(len(body))
func (g Grid) WalkableBody(p Point, body []Point) bool {
	if !g.Contains(p) {
		return false
	}
	for _, s := range body {
		if s == p {
			return false
		}
	}
	return true
}

package types

// Direction is one of the four cardinal headings
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// Directions lists the cardinal headings in expansion order (+x, -x, +y, -y)
var Directions = [4]Direction{Right, Left, Down, Up}

// Vector converts a Direction into a unit displacement
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

// DirectionOf maps a unit vector back to its Direction; anything else is None
func DirectionOf(v Point) Direction {
	switch v {
	case Point{X: 0, Y: -1}:
		return Up
	case Point{X: 1, Y: 0}:
		return Right
	case Point{X: 0, Y: 1}:
		return Down
	case Point{X: -1, Y: 0}:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

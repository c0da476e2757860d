package entity

import (
	"snake-ai/game/types"
)

// Snake is the player body; Body[0] is the head
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	grow      bool
}

// NewSnake returns a snake in its starting pose
func NewSnake() *Snake {
	s := &Snake{}
	s.Reset()
	return s
}

// Reset restores the 3-segment starting body heading right
func (s *Snake) Reset() {
	s.Body = []types.Point{{X: 4, Y: 23}, {X: 3, Y: 23}, {X: 2, Y: 23}}
	s.Direction = types.Right
	s.grow = false
}

// Head returns the leading segment
func (s *Snake) Head() types.Point {
	return s.Body[0]
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return len(s.Body)
}

// GrowPending reports whether the next Update keeps the tail
func (s *Snake) GrowPending() bool {
	return s.grow
}

// SetDirection changes heading unless dir is not a cardinal direction or
// would reverse the snake onto its neck. Returns true if applied.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if dir == types.None || dir.Vector() == (types.Point{}) {
		return false
	}
	if dir == s.Direction.Opposite() {
		return false
	}
	s.Direction = dir
	return true
}

// Update advances one cell. The tail is kept once if growth was scheduled.
func (s *Snake) Update() {
	newHead := s.Head().Add(s.Direction.Vector())
	s.Body = append([]types.Point{newHead}, s.Body...)
	if s.grow {
		s.grow = false
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

// Grow schedules one extra segment on the next Update
func (s *Snake) Grow() {
	s.grow = true
}

// Shrink drops the tail segment. A single-segment snake cannot shrink.
func (s *Snake) Shrink() bool {
	if len(s.Body) <= 1 {
		return false
	}
	s.Body = s.Body[:len(s.Body)-1]
	return true
}

// HitsSelf reports whether the head overlaps any other segment
func (s *Snake) HitsSelf() bool {
	head := s.Head()
	for _, p := range s.Body[1:] {
		if p == head {
			return true
		}
	}
	return false
}

// Clone returns a copy of the body safe to hand to renderers
func (s *Snake) Clone() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}

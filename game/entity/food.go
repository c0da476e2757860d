package entity

import (
	"fmt"

	"snake-ai/game/types"
)

// Kind tags a collectible with its effect policy
type Kind int

const (
	Standard Kind = iota // +1 point, grow
	Growth               // +2 points, grow
	Shrink               // lose the tail segment
	Negative             // -1 point
)

// Effect is the table-driven policy applied when the head lands on an entity
type Effect struct {
	ScoreDelta int
	Grow       bool // schedule +1 length on the next tick
	Shrink     bool // drop the tail now; ends the round at length 1
	// Negative deltas end the round instead of taking the score below zero
	FloorAtZero bool
}

var effects = [...]Effect{
	Standard: {ScoreDelta: 1, Grow: true},
	Growth:   {ScoreDelta: 2, Grow: true},
	Shrink:   {Shrink: true},
	Negative: {ScoreDelta: -1, FloorAtZero: true},
}

// Effect returns the policy for k
func (k Kind) Effect() Effect {
	if k < 0 || int(k) >= len(effects) {
		return Effect{}
	}
	return effects[k]
}

// Beneficial reports whether consuming k can only help the player
func (k Kind) Beneficial() bool {
	return k == Standard || k == Growth
}

func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Growth:
		return "growth"
	case Shrink:
		return "shrink"
	case Negative:
		return "negative"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText lets kinds appear by name in JSON snapshots
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entity is a positioned collectible
type Entity struct {
	Pos  types.Point `json:"pos"`
	Kind Kind        `json:"kind"`
}

// Layout is the fixed slot order of the five entities on the board
var Layout = [...]Kind{Standard, Growth, Shrink, Negative, Negative}

// UnmarshalText parses a kind name produced by MarshalText
func (k *Kind) UnmarshalText(text []byte) error {
	for i := Standard; i <= Negative; i++ {
		if i.String() == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("unknown entity kind %q", text)
}

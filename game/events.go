package game

import (
	"fmt"
	"time"

	"snake-ai/game/entity"
	"snake-ai/game/manager"
	"snake-ai/game/types"
)

// Phase is the round state
type Phase int

const (
	Playing Phase = iota
	Terminated
)

func (p Phase) String() string {
	if p == Terminated {
		return "terminated"
	}
	return "playing"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*p = Playing
	case "terminated":
		*p = Terminated
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Reason says how a round ended
type Reason int

const (
	ReasonNone Reason = iota
	ReasonWall
	ReasonSelf
	ReasonShrink   // shrink food eaten at length 1
	ReasonNegative // negative food eaten at score 0
)

var reasonNames = [...]string{
	ReasonNone:     "",
	ReasonWall:     "wall",
	ReasonSelf:     "self",
	ReasonShrink:   "shrink",
	ReasonNegative: "negative",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonNames[r]
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalText(text []byte) error {
	for i, name := range reasonNames {
		if name == string(text) {
			*r = Reason(i)
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", text)
}

func reasonFor(c manager.Collision) Reason {
	switch c {
	case manager.WallCollision:
		return ReasonWall
	case manager.SelfCollision:
		return ReasonSelf
	default:
		return ReasonNone
	}
}

// EventType distinguishes notifications sent to observers
type EventType int

const (
	// EventTick follows every tick, terminal or not, with the new snapshot
	EventTick EventType = iota
	// EventConsume is sent once per entity eaten; Kind is set
	EventConsume
	// EventCollide is sent when the round ends; Reason is set
	EventCollide
	// EventGameOver follows EventCollide with the finished Round
	EventGameOver
	// EventRestart carries the snapshot of a freshly started round
	EventRestart
)

// Event is a notification from the tick controller
type Event struct {
	Type         EventType
	Kind         entity.Kind
	Reason       Reason
	Snapshot     Snapshot
	Round        Round
	NewHighScore bool
}

// Observer receives events synchronously on the game goroutine.
// Implementations must not block.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Snapshot is a read-only copy of the game handed to collaborators
type Snapshot struct {
	RoundID   string           `json:"round_id"`
	Tick      int              `json:"tick"`
	Phase     Phase            `json:"phase"`
	Reason    Reason           `json:"reason,omitempty"`
	Body      []types.Point    `json:"body"`
	Direction types.Direction  `json:"direction"`
	Entities  []entity.Entity  `json:"entities"`
	Score     int              `json:"score"`
	HighScore int              `json:"high_score"`
	Counters  manager.Counters `json:"counters"`
	Autopilot bool             `json:"autopilot"`
	Path      []types.Point    `json:"path,omitempty"`
}

// Head returns the snake head, or false for an empty snapshot
func (s Snapshot) Head() (types.Point, bool) {
	if len(s.Body) == 0 {
		return types.Point{}, false
	}
	return s.Body[0], true
}

// Round summarises a finished round
type Round struct {
	ID        string           `json:"id"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   time.Time        `json:"ended_at"`
	Score     int              `json:"score"`
	Reason    Reason           `json:"reason"`
	Ticks     int              `json:"ticks"`
	Length    int              `json:"length"`
	Counters  manager.Counters `json:"counters"`
	Autopilot bool             `json:"autopilot"`
}

// Duration returns how long the round lasted
func (r Round) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

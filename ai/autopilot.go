package ai

import (
	"fmt"

	"snake-ai/game/entity"
	"snake-ai/game/types"
)

// TargetPolicy selects which entity the autopilot steers toward
type TargetPolicy int

const (
	// PolicyNearest chases whichever entity is closest, whatever its kind
	PolicyNearest TargetPolicy = iota
	// PolicySafe only chases Standard and Growth food
	PolicySafe
)

// ParsePolicy maps a config string onto a TargetPolicy
func ParsePolicy(s string) (TargetPolicy, error) {
	switch s {
	case "", "nearest":
		return PolicyNearest, nil
	case "safe":
		return PolicySafe, nil
	default:
		return PolicyNearest, fmt.Errorf("unknown target policy %q", s)
	}
}

func (p TargetPolicy) String() string {
	if p == PolicySafe {
		return "safe"
	}
	return "nearest"
}

// Autopilot drives the snake along A* paths toward food
type Autopilot struct {
	grid     types.Grid
	policy   TargetPolicy
	lastPath []types.Point
}

// NewAutopilot creates an autopilot for grid
func NewAutopilot(grid types.Grid, policy TargetPolicy) *Autopilot {
	return &Autopilot{grid: grid, policy: policy}
}

// Policy returns the active target policy
func (a *Autopilot) Policy() TargetPolicy {
	return a.policy
}

// ChooseTarget returns the entity position with the smallest Manhattan
// distance from head. Ties go to the earlier slot.
func (a *Autopilot) ChooseTarget(head types.Point, foods []entity.Entity) (types.Point, bool) {
	best := -1
	var target types.Point
	for _, f := range foods {
		if a.policy == PolicySafe && !f.Kind.Beneficial() {
			continue
		}
		d := types.Manhattan(head, f.Pos)
		if best < 0 || d < best {
			best = d
			target = f.Pos
		}
	}
	return target, best >= 0
}

// Decide returns the heading for the next tick. When no target is reachable
// the current heading is kept.
func (a *Autopilot) Decide(body []types.Point, current types.Direction, foods []entity.Entity) types.Direction {
	a.lastPath = nil
	if len(body) == 0 {
		return current
	}

	head := body[0]
	target, ok := a.ChooseTarget(head, foods)
	if !ok {
		return current
	}

	path := FindPath(a.grid, head, target, body)
	a.lastPath = path
	if len(path) < 2 {
		return current
	}

	if dir := types.DirectionOf(path[1].Sub(head)); dir != types.None {
		return dir
	}
	return current
}

// LastPath returns the path computed by the most recent Decide
func (a *Autopilot) LastPath() []types.Point {
	return a.lastPath
}

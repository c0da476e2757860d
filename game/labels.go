package game

import (
	"fmt"

	"snake-ai/game/entity"
	"snake-ai/game/manager"
)

// RuleLine is one entry of the start screen legend
type RuleLine struct {
	Kind entity.Kind
	Text string
}

// Rules is the legend shown on the start screen, one line per food kind
var Rules = []RuleLine{
	{entity.Negative, "- Red: -1 point, no size change"},
	{entity.Shrink, "- Orange: no score change, -1 size"},
	{entity.Growth, "- Blue: +2 points, +1 size"},
	{entity.Standard, "- Black: +1 point, +1 size"},
}

func CounterLine(c manager.Counters) string {
	return fmt.Sprintf("Growth: %d | Shrink: %d | Negative: %d", c.Growth, c.Shrink, c.Negative)
}

func ModeLine(autopilot bool) string {
	if autopilot {
		return "Mode: AI (SPACE to switch)"
	}
	return "Mode: Manual (SPACE to switch)"
}

// ReasonLine describes a terminal reason for the game over screen
func ReasonLine(r Reason) string {
	switch r {
	case ReasonWall:
		return "You hit the wall"
	case ReasonSelf:
		return "You bit yourself"
	case ReasonShrink:
		return "Shrunk to nothing"
	case ReasonNegative:
		return "Negative food with no points left"
	default:
		return ""
	}
}

package game

import (
	"testing"

	"snake-ai/game/entity"
	"snake-ai/game/manager"
)

func TestLabels(t *testing.T) {
	if got := CounterLine(manager.Counters{Growth: 2, Shrink: 1, Negative: 3}); got != "Growth: 2 | Shrink: 1 | Negative: 3" {
		t.Errorf("CounterLine = %q", got)
	}
	if ModeLine(true) != "Mode: AI (SPACE to switch)" || ModeLine(false) != "Mode: Manual (SPACE to switch)" {
		t.Error("unexpected mode line")
	}
	if ReasonLine(ReasonNone) != "" || ReasonLine(ReasonWall) == "" {
		t.Error("unexpected reason line")
	}

	seen := make(map[entity.Kind]bool)
	for _, r := range Rules {
		seen[r.Kind] = true
	}
	if len(seen) != 4 {
		t.Errorf("legend covers %d kinds, want 4", len(seen))
	}
}

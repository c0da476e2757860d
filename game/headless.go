package game

import "context"

// roundCollector keeps every finished round in order
type roundCollector struct {
	rounds []Round
}

func (c *roundCollector) OnEvent(e Event) {
	if e.Type == EventGameOver {
		c.rounds = append(c.rounds, e.Round)
	}
}

// RunHeadless plays up to n autopilot rounds back to back without a clock
// and returns them in order. A round still alive after maxTicks is cut off
// and reported as it stands, with ReasonNone, through the same game-over
// event observers see for any other round. Cancelling ctx stops after the
// current tick.
func RunHeadless(ctx context.Context, g *Game, n, maxTicks int) []Round {
	c := &roundCollector{}
	g.Subscribe(c)
	g.SetAutopilot(true)

	for i := 0; i < n; i++ {
		if i > 0 {
			g.Restart()
		}
		for g.Phase() == Playing && g.Ticks() < maxTicks {
			if ctx.Err() != nil {
				return c.rounds
			}
			g.Tick()
		}
		if g.Phase() == Playing {
			g.cutOff()
		}
	}
	return c.rounds
}

// cutOff ends a round that is still alive without a collision. The high
// score is left alone and no collide event is sent.
func (g *Game) cutOff() {
	g.logger.Printf("Round %s cut off at %d ticks with score %d", g.roundID, g.ticks, g.Score())
	g.phase = Terminated
	g.reason = ReasonNone
	g.emit(Event{Type: EventGameOver, Reason: ReasonNone, Round: g.Round()})
}

package game

import "time"

// Clock gates simulation steps to a fixed interval while frames run freely
type Clock struct {
	interval time.Duration
	last     time.Time
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{interval: interval}
}

// Due reports whether at least one interval has passed since the last step
// and, if so, starts the next interval at now. The first call only arms it.
func (c *Clock) Due(now time.Time) bool {
	if c.last.IsZero() {
		c.last = now
		return false
	}
	if now.Sub(c.last) < c.interval {
		return false
	}
	c.last = now
	return true
}

// Reset re-arms the clock at now
func (c *Clock) Reset(now time.Time) {
	c.last = now
}

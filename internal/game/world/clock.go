package world

import "time"

// MaxCatchUp bounds the ticks run for one rendered frame.
const MaxCatchUp = 5

// Clock converts variable frame time into fixed ticks.
type Clock struct {
	Tick    float64 // Seconds per tick
	acc     float64
	dropped int
}

// NewClock creates a clock for the given tick duration.
func NewClock(tick time.Duration) *Clock {
	return &Clock{Tick: tick.Seconds()}
}

// Advance adds frame time and returns how many ticks to run now. When more
// than MaxCatchUp are due the backlog is dropped so a long stall does not
// fast-forward the world.
func (c *Clock) Advance(frame float64) int {
	if c.Tick <= 0 || frame <= 0 {
		return 0
	}
	c.acc += frame
	n := int(c.acc / c.Tick)
	if n > MaxCatchUp {
		c.dropped += n - MaxCatchUp
		c.acc = 0
		return MaxCatchUp
	}
	c.acc -= float64(n) * c.Tick
	return n
}

// Alpha is the fraction of a tick left in the accumulator.
func (c *Clock) Alpha() float64 {
	if c.Tick <= 0 {
		return 0
	}
	return c.acc / c.Tick
}

// Dropped returns the number of ticks skipped after stalls.
func (c *Clock) Dropped() int {
	return c.dropped
}

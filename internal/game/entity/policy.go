package entity

import "github.com/Faultbox/beyond-sight/pkg/math"

// View is the read-only world state policies decide from.
type View interface {
	Player() *Actor
	Reaper() *Actor
}

// Policy chooses where an idle actor wants to go. It returns the offset
// toward the desired destination; a zero offset holds position.
type Policy interface {
	Decide(self *Actor, view View) (dx, dy float64)
}

// Ticker is implemented by policies with per-tick state of their own
// (timers, stamina). Tick runs before movement every tick.
type Ticker interface {
	Tick(self *Actor, view View, dt float64)
}

// Forbidder is implemented by policies that refuse some destinations on
// top of normal collision.
type Forbidder interface {
	Forbidden(self *Actor, cell math.Vec2, view View) bool
}

// PassThrough is implemented by policies whose actor may step into certain
// other actors instead of being blocked by them.
type PassThrough interface {
	PassesThrough(other *Actor) bool
}

// Hold never moves.
type Hold struct{}

// Decide implements Policy.
func (Hold) Decide(*Actor, View) (float64, float64) { return 0, 0 }

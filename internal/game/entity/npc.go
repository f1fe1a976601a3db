package entity

import (
	"math/rand"
	"time"
)

// Wander turns an NPC to a random new facing on a fixed interval without
// moving it.
type Wander struct {
	Interval float64 // Seconds between turns

	rng   *rand.Rand
	timer float64
}

// NewWander creates a wander policy. rng makes the choices reproducible;
// nil seeds from the clock.
func NewWander(interval time.Duration, rng *rand.Rand) *Wander {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Wander{Interval: interval.Seconds(), rng: rng}
}

// Decide implements Policy.
func (w *Wander) Decide(*Actor, View) (float64, float64) { return 0, 0 }

// Tick implements Ticker.
func (w *Wander) Tick(self *Actor, _ View, dt float64) {
	if w.Interval <= 0 {
		return
	}
	w.timer += dt
	if w.timer < w.Interval {
		return
	}
	w.timer = 0

	choices := make([]Facing, 0, len(Facings)-1)
	for _, f := range Facings {
		if f != self.Facing {
			choices = append(choices, f)
		}
	}
	self.Facing = choices[w.rng.Intn(len(choices))]
	self.ResetFrame()
}

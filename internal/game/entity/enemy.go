package entity

import (
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Chaser is the enemy policy: it steps toward a player within
// DetectionRadius and never enters ForbiddenRadius around the Reaper.
type Chaser struct {
	DetectionRadius float64
	ForbiddenRadius float64
}

// Decide implements Policy.
func (c *Chaser) Decide(self *Actor, view View) (float64, float64) {
	player := view.Player()
	if player == nil {
		return 0, 0
	}
	d := player.Cell.Sub(self.Cell)
	if d.Length() > c.DetectionRadius {
		return 0, 0
	}
	return d.X, d.Y
}

// Forbidden implements Forbidder.
func (c *Chaser) Forbidden(_ *Actor, cell math.Vec2, view View) bool {
	reaper := view.Reaper()
	if reaper == nil || c.ForbiddenRadius <= 0 {
		return false
	}
	return cell.Distance(reaper.Cell) <= c.ForbiddenRadius
}

// PassesThrough implements PassThrough: enemies walk into the player to
// attack instead of stopping next to it.
func (c *Chaser) PassesThrough(other *Actor) bool {
	return other.Kind == KindPlayer
}

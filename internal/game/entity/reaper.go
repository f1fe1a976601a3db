package entity

import (
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/logger"
)

// Guardian is the Reaper's policy. It never moves; it turns to watch a
// player within DetectRadius and protects the player within SafeRadius.
type Guardian struct {
	SafeRadius   float64
	DetectRadius float64

	protecting bool
}

// Decide implements Policy.
func (g *Guardian) Decide(*Actor, View) (float64, float64) { return 0, 0 }

// Tick implements Ticker.
func (g *Guardian) Tick(self *Actor, view View, _ float64) {
	player := view.Player()
	if player != nil && player.Cell.Distance(self.Cell) <= g.DetectRadius {
		d := player.Cell.Sub(self.Cell)
		if f, ok := StepFacing(d.X, d.Y); ok {
			self.Facing = f
		}
	}
	now := player != nil && player.Cell.Distance(self.Cell) <= g.SafeRadius
	if now != g.protecting {
		logger.Debug("reaper protection changed",
			zap.Bool("protecting", now),
			zap.Uint32("reaper", self.ID))
	}
	g.protecting = now
}

// Protecting reports whether the player was inside the safe zone on the
// last tick.
func (g *Guardian) Protecting() bool {
	return g.protecting
}

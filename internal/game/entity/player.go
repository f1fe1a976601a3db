package entity

import (
	"github.com/Faultbox/beyond-sight/internal/config"
)

// PlayerControl drives the player from held keys and tracks stamina and
// health.
type PlayerControl struct {
	Keys Keys

	WalkSpeed float64
	RunSpeed  float64

	Stamina      float64
	MaxStamina   float64
	DrainPerTick float64
	RegenPerTick float64

	Health    int
	MaxHealth int

	exhausted bool // Drained to zero; cleared by releasing run or a full bar
}

// NewPlayerControl creates a rested, unhurt player control.
func NewPlayerControl(w config.WorldConfig) *PlayerControl {
	return &PlayerControl{
		WalkSpeed:    w.WalkSpeed,
		RunSpeed:     w.RunSpeed,
		Stamina:      w.MaxStamina,
		MaxStamina:   w.MaxStamina,
		DrainPerTick: w.StaminaDrainPerTick(),
		RegenPerTick: w.StaminaRegenPerTick(),
		Health:       w.MaxHealth,
		MaxHealth:    w.MaxHealth,
	}
}

// Decide implements Policy. The step speed is chosen here, so a step keeps
// the speed it started with even if run is released or stamina runs out.
func (p *PlayerControl) Decide(self *Actor, _ View) (float64, float64) {
	f, ok := p.Keys.Direction()
	if !ok {
		return 0, 0
	}
	if p.Keys.Has(KeyRun) && p.Stamina > 0 && !p.exhausted {
		self.Speed = p.RunSpeed
	} else {
		self.Speed = p.WalkSpeed
	}
	v := f.Vector(self.TileSize)
	return v.X, v.Y
}

// Tick implements Ticker. A step started at run speed drains stamina. While
// run and a direction are held, stamina is never restored, including the
// idle tick between two steps; otherwise it regenerates.
func (p *PlayerControl) Tick(self *Actor, _ View, _ float64) {
	switch {
	case p.Running(self):
		p.Stamina -= p.DrainPerTick
		if p.Stamina <= 0 {
			p.Stamina = 0
			p.exhausted = true
		}
	case p.Keys.Has(KeyRun) && (self.IsMoving() || p.wantsMove()):
	default:
		p.Stamina += p.RegenPerTick
	}
	if p.Stamina > p.MaxStamina {
		p.Stamina = p.MaxStamina
	}
	if !p.Keys.Has(KeyRun) || p.Stamina == p.MaxStamina {
		p.exhausted = false
	}
}

// Running reports whether self is in the middle of a step started at run
// speed.
func (p *PlayerControl) Running(self *Actor) bool {
	return self.IsMoving() && p.RunSpeed > p.WalkSpeed && self.StepSpeed() == p.RunSpeed
}

func (p *PlayerControl) wantsMove() bool {
	_, ok := p.Keys.Direction()
	return ok
}

// Exhausted reports whether run is locked out until it is released or
// stamina refills.
func (p *PlayerControl) Exhausted() bool {
	return p.exhausted
}

// StaminaRatio returns stamina as a fraction of the maximum.
func (p *PlayerControl) StaminaRatio() float64 {
	if p.MaxStamina <= 0 {
		return 0
	}
	return p.Stamina / p.MaxStamina
}

// Damage removes one heart. It reports false when the player had none left.
func (p *PlayerControl) Damage() bool {
	if p.Health <= 0 {
		return false
	}
	p.Health--
	return true
}

// Dead reports whether every heart is gone.
func (p *PlayerControl) Dead() bool {
	return p.Health <= 0
}

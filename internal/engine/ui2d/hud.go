// Package ui2d lays out the screen-space status display: hearts and the
// stamina bar. Coordinates have their origin at the bottom-left of the
// window, matching the world projection.
package ui2d

import (
	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// ReferenceHeight is the window height the HUD sizes are authored for.
const ReferenceHeight = 540

// HeartState is how one heart slot is drawn.
type HeartState uint8

const (
	HeartFull HeartState = iota
	HeartBroken
	HeartEmpty
)

// Element is one rectangle to draw. A zero Texture means flat Color.
type Element struct {
	Rect    math.Rect
	Color   Color
	Texture tileatlas.Texture
}

// HUD tracks heart animation and produces draw elements.
type HUD struct {
	cfg    config.HUDConfig
	hearts []HeartState
	broken []float64 // Seconds left showing cracked, per slot
	health int

	stamina float64
	images  [3]tileatlas.Texture
}

// NewHUD creates a HUD for maxHealth hearts, all full.
func NewHUD(cfg config.HUDConfig, maxHealth int) *HUD {
	maxHealth = max(maxHealth, 0)
	return &HUD{
		cfg:     cfg,
		hearts:  make([]HeartState, maxHealth),
		broken:  make([]float64, maxHealth),
		health:  maxHealth,
		stamina: 1,
	}
}

// SetHeartImages sets the textures for the full, broken and empty states.
// Missing ones fall back to flat colours.
func (h *HUD) SetHeartImages(full, broken, empty tileatlas.Texture) {
	h.images = [3]tileatlas.Texture{full, broken, empty}
}

// Update advances heart timers and applies the current vitals. A heart
// that was just lost shows cracked for BrokenFor seconds, then empty.
func (h *HUD) Update(dt float64, health int, staminaRatio float64) {
	health = min(max(health, 0), len(h.hearts))
	for i := health; i < h.health; i++ {
		h.hearts[i] = HeartBroken
		h.broken[i] = h.cfg.BrokenFor
	}
	for i := h.health; i < health; i++ {
		h.hearts[i] = HeartFull
		h.broken[i] = 0
	}
	h.health = health

	for i := range h.hearts {
		if h.hearts[i] != HeartBroken {
			continue
		}
		h.broken[i] -= dt
		if h.broken[i] <= 0 {
			h.hearts[i] = HeartEmpty
			h.broken[i] = 0
		}
	}

	h.stamina = min(max(staminaRatio, 0), 1)
}

// Hearts returns the state of each slot, left to right.
func (h *HUD) Hearts() []HeartState {
	out := make([]HeartState, len(h.hearts))
	copy(out, h.hearts)
	return out
}

// Layout returns the elements for a window of the given size, hearts along
// the top-left and the stamina bar beneath them.
func (h *HUD) Layout(width, height int) []Element {
	scale := float64(height) / ReferenceHeight
	size := float64(h.cfg.HeartSize) * scale
	pad := float64(h.cfg.HeartPad) * scale
	margin := float64(h.cfg.Margin) * scale
	top := float64(height) - margin

	out := make([]Element, 0, len(h.hearts)+2)
	for i, s := range h.hearts {
		out = append(out, h.heart(s, math.Rect{
			X: margin + float64(i)*(size+pad),
			Y: top - size,
			W: size,
			H: size,
		}))
	}

	barW := float64(h.cfg.StaminaWidth) * scale
	barH := float64(h.cfg.StaminaH) * scale
	if barW <= 0 || barH <= 0 {
		return out
	}
	bg := math.Rect{X: margin, Y: top - size - pad - barH, W: barW, H: barH}
	out = append(out, Element{Rect: bg, Color: ColorStaminaBg})

	fill := ColorStamina
	if h.stamina < 0.25 {
		fill = ColorStaminaLow
	}
	if w := barW * h.stamina; w > 0 {
		out = append(out, Element{Rect: math.Rect{X: bg.X, Y: bg.Y, W: w, H: barH}, Color: fill})
	}
	return out
}

func (h *HUD) heart(s HeartState, r math.Rect) Element {
	if tex := h.images[s]; tex.ID != 0 {
		return Element{Rect: r, Color: ColorWhite, Texture: tex}
	}
	c := ColorHeartFull
	switch s {
	case HeartBroken:
		c = ColorHeartBroken
	case HeartEmpty:
		c = ColorHeartEmpty
	}
	return Element{Rect: r, Color: c}
}

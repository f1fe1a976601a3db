// Package character turns actor state into sprite-sheet frames for the
// renderer.
package character

import (
	"errors"
	"fmt"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/game/entity"
)

// ErrInvalidSheet is returned for sheets with no frames.
var ErrInvalidSheet = errors.New("invalid sprite sheet")

// SpriteFrame is what the renderer draws for an actor this tick.
type SpriteFrame struct {
	Texture tileatlas.Texture
	UV      tileatlas.UVRect
}

// SheetLayout describes a grid sprite sheet: one column per animation frame
// and one row per facing. Rows are counted from the top of the image;
// sheets with fewer rows than facings map several facings to one row.
type SheetLayout struct {
	Texture tileatlas.Texture
	Cols    int
	Rows    int
	RowFor  [4]int // Indexed by entity.Facing
	FPS     float64
}

// NewSheetLayout builds a layout from config. Facings missing from the row
// map use row 0.
func NewSheetLayout(sheet config.Sheet, tex tileatlas.Texture) (SheetLayout, error) {
	if sheet.Cols <= 0 || sheet.Rows <= 0 {
		return SheetLayout{}, fmt.Errorf("%w: %s has %dx%d frames", ErrInvalidSheet, sheet.Path, sheet.Cols, sheet.Rows)
	}
	l := SheetLayout{
		Texture: tex,
		Cols:    sheet.Cols,
		Rows:    sheet.Rows,
		FPS:     sheet.FPS,
	}
	for name, row := range sheet.RowMap {
		f, ok := entity.ParseFacing(name)
		if !ok {
			return SheetLayout{}, fmt.Errorf("%w: %s: unknown facing %q", ErrInvalidSheet, sheet.Path, name)
		}
		if row < 0 || row >= sheet.Rows {
			return SheetLayout{}, fmt.Errorf("%w: %s: row %d for %s outside %d rows", ErrInvalidSheet, sheet.Path, row, name, sheet.Rows)
		}
		l.RowFor[f] = row
	}
	return l, nil
}

// FrameSize returns the pixel size of one frame.
func (l SheetLayout) FrameSize() (w, h int) {
	if l.Cols <= 0 || l.Rows <= 0 {
		return 0, 0
	}
	return l.Texture.Width / l.Cols, l.Texture.Height / l.Rows
}

// Frame returns the UV rectangle of frame n for the given facing.
// n wraps around the column count.
func (l SheetLayout) Frame(facing entity.Facing, n int) SpriteFrame {
	cols, rows := max(l.Cols, 1), max(l.Rows, 1)
	col := ((n % cols) + cols) % cols
	row := 0
	if int(facing) < len(l.RowFor) {
		row = min(max(l.RowFor[facing], 0), rows-1)
	}

	w := 1 / float32(cols)
	h := 1 / float32(rows)
	// Texture V grows upward; row 0 is the top band.
	v0 := 1 - float32(row+1)*h
	return SpriteFrame{
		Texture: l.Texture,
		UV: tileatlas.UVRect{
			U0: float32(col) * w,
			V0: v0,
			U1: float32(col+1) * w,
			V1: v0 + h,
		},
	}
}

// Animator picks sheets by movement state. Walk falls back to Idle.
type Animator struct {
	Idle SheetLayout
	Walk *SheetLayout
}

// Frame returns the sprite frame for the actor's current state.
func (a *Animator) Frame(actor *entity.Actor) SpriteFrame {
	layout := a.Idle
	if actor.State() == entity.StateWalking && a.Walk != nil {
		layout = *a.Walk
	}
	return layout.Frame(actor.Facing, actor.Frame)
}

// Bind copies the sheet's timing onto the actor's animation clock.
func (a *Animator) Bind(actor *entity.Actor) {
	actor.AnimFPS = a.Idle.FPS
	actor.FrameCount = max(a.Idle.Cols, 1)
	actor.ResetFrame()
}

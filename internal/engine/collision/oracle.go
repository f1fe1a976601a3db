package collision

import (
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Intersects reports half-open AABB overlap between a and b.
func Intersects(a, b math.Rect) bool {
	return a.Intersects(b)
}

// CanEnter reports whether candidate overlaps none of the given rectangles.
// Nil or empty lists never block.
func CanEnter(candidate math.Rect, solids []math.Rect, others []math.Rect) bool {
	for _, s := range solids {
		if candidate.Intersects(s) {
			return false
		}
	}
	for _, o := range others {
		if candidate.Intersects(o) {
			return false
		}
	}
	return true
}

// InBounds reports whether r lies entirely inside a world of the given size
// anchored at the origin.
func InBounds(r math.Rect, worldW, worldH float64) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= worldW && r.Y+r.H <= worldH
}

// Hitbox is the gameplay footprint of an actor: one logical tile at its
// cell position, independent of how tall its sprite is drawn.
func Hitbox(cell math.Vec2, tileSize float64) math.Rect {
	return math.Rect{X: cell.X, Y: cell.Y, W: tileSize, H: tileSize}
}

// VisualRect places a sprite of size w x h over a cell: horizontally
// centred on the tile and lifted half a tile so its feet sit on the cell.
func VisualRect(cell math.Vec2, tileSize, w, h float64) math.Rect {
	return math.Rect{
		X: cell.X + (tileSize-w)/2,
		Y: cell.Y + tileSize/2,
		W: w,
		H: h,
	}
}

// Oracle bundles the static solids and world bounds for movement queries.
// Bounds of zero disable the bounds check on that axis.
type Oracle struct {
	Solids        *SolidSet
	Width, Height float64
	TileSize      float64
}

// Blocked reports whether an actor may not occupy cell, given the current
// hitboxes of every other actor.
func (o *Oracle) Blocked(cell math.Vec2, others []math.Rect) bool {
	box := Hitbox(cell, o.TileSize)
	if !o.inBounds(box) {
		return true
	}
	var solids []math.Rect
	if o.Solids != nil {
		solids = o.Solids.Rects()
	}
	return !CanEnter(box, solids, others)
}

func (o *Oracle) inBounds(box math.Rect) bool {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = box.X + box.W
	}
	if h <= 0 {
		h = box.Y + box.H
	}
	return InBounds(box, w, h)
}

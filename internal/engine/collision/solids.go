// Package collision answers AABB overlap queries between actors and the
// static solid rectangles baked from a map.
package collision

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/Faultbox/beyond-sight/pkg/math"
)

// SolidSet stores static, non-walkable rectangles.
// Rectangles are deduplicated by exact value; overlapping but distinct
// rectangles are kept as-is.
type SolidSet struct {
	rects []math.Rect
	seen  *mapset.Set[math.Rect]
}

// NewSolidSet creates an empty set.
func NewSolidSet() *SolidSet {
	return &SolidSet{}
}

// Add inserts r unless an identical rectangle is already present or r has
// no area. Reports whether r was stored.
func (s *SolidSet) Add(r math.Rect) bool {
	if r.Empty() {
		return false
	}
	if s.seen == nil {
		seen := mapset.New[math.Rect]()
		s.seen = &seen
	}
	if s.seen.Has(r) {
		return false
	}
	s.seen.Put(r)
	s.rects = append(s.rects, r)
	return true
}

// Rects returns the stored rectangles in insertion order.
func (s *SolidSet) Rects() []math.Rect {
	if s == nil {
		return nil
	}
	return s.rects
}

// Len returns the number of stored rectangles.
func (s *SolidSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rects)
}

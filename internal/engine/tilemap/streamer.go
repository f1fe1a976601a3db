package tilemap

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/logger"
)

// DefaultViewMargin is the streaming half-extent around the focal point.
// It is deliberately larger than any window so zoom and aspect changes
// never expose unattached chunks.
const DefaultViewMargin = 1000

// Listener is notified when a chunk group enters or leaves the active set.
// The renderer uses it to upload and release GPU buffers.
type Listener interface {
	ChunkAttached(p Pass, g *ChunkGroup)
	ChunkDetached(p Pass, g *ChunkGroup)
}

// Streamer keeps the set of chunks around a focal point attached.
type Streamer struct {
	baked    *Baked
	margin   float64
	visible  mapset.Set[ChunkKey]
	listener Listener

	activeBG map[ChunkKey]*ChunkGroup
	activeFG map[ChunkKey]*ChunkGroup
}

// NewStreamer creates a streamer over baked geometry. A nil listener is allowed.
func NewStreamer(baked *Baked, margin float64, listener Listener) *Streamer {
	if margin < 0 {
		margin = 0
	}
	return &Streamer{
		baked:    baked,
		margin:   margin,
		visible:  mapset.New[ChunkKey](),
		listener: listener,
		activeBG: make(map[ChunkKey]*ChunkGroup),
		activeFG: make(map[ChunkKey]*ChunkGroup),
	}
}

// VisibleRange returns the inclusive chunk bounds covering the square of
// half-size margin around (x, y).
func VisibleRange(x, y, margin, chunkSize float64) (minKey, maxKey ChunkKey) {
	minKey = ChunkKey{
		X: int(math.Floor((x - margin) / chunkSize)),
		Y: int(math.Floor((y - margin) / chunkSize)),
	}
	maxKey = ChunkKey{
		X: int(math.Floor((x + margin) / chunkSize)),
		Y: int(math.Floor((y + margin) / chunkSize)),
	}
	return minKey, maxKey
}

// UpdateVisible recomputes the visible chunk set around the focal point,
// detaching chunks that left it and attaching chunks that entered it.
// Returns the keys that changed; both are empty when nothing moved.
func (s *Streamer) UpdateVisible(x, y float64) (attached, detached []ChunkKey) {
	minKey, maxKey := VisibleRange(x, y, s.margin, s.baked.ChunkSize)

	next := mapset.New[ChunkKey]()
	for cx := minKey.X; cx <= maxKey.X; cx++ {
		for cy := minKey.Y; cy <= maxKey.Y; cy++ {
			next.Put(ChunkKey{X: cx, Y: cy})
		}
	}

	s.visible.Each(func(k ChunkKey) {
		if !next.Has(k) {
			detached = append(detached, k)
		}
	})
	next.Each(func(k ChunkKey) {
		if !s.visible.Has(k) {
			attached = append(attached, k)
		}
	})

	sortKeys(detached)
	sortKeys(attached)

	for _, k := range detached {
		s.detach(Background, k, s.activeBG)
		s.detach(Foreground, k, s.activeFG)
	}
	for _, k := range attached {
		s.attach(Background, k, s.activeBG)
		s.attach(Foreground, k, s.activeFG)
	}
	s.visible = next

	if len(attached) > 0 || len(detached) > 0 {
		logger.Debug("chunks updated",
			zap.Int("attached", len(attached)),
			zap.Int("detached", len(detached)),
			zap.Int("active_bg", len(s.activeBG)),
			zap.Int("active_fg", len(s.activeFG)))
	}
	return attached, detached
}

func (s *Streamer) attach(p Pass, k ChunkKey, active map[ChunkKey]*ChunkGroup) {
	g := s.baked.Group(p, k)
	if g == nil {
		return
	}
	active[k] = g
	if s.listener != nil {
		s.listener.ChunkAttached(p, g)
	}
}

func (s *Streamer) detach(p Pass, k ChunkKey, active map[ChunkKey]*ChunkGroup) {
	g, ok := active[k]
	if !ok {
		return
	}
	delete(active, k)
	if s.listener != nil {
		s.listener.ChunkDetached(p, g)
	}
}

// Visible reports whether key is in the current visible set.
func (s *Streamer) Visible(key ChunkKey) bool {
	return s.visible.Has(key)
}

// VisibleCount returns the size of the visible set, including empty chunks.
func (s *Streamer) VisibleCount() int {
	return s.visible.Size()
}

// ActiveBackground returns attached background groups in stable order.
func (s *Streamer) ActiveBackground() []*ChunkGroup {
	return sortedGroups(s.activeBG)
}

// ActiveForeground returns attached foreground groups in stable order.
func (s *Streamer) ActiveForeground() []*ChunkGroup {
	return sortedGroups(s.activeFG)
}

func sortedGroups(m map[ChunkKey]*ChunkGroup) []*ChunkGroup {
	out := make([]*ChunkGroup, 0, len(m))
	for _, g := range m {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return keyLess(out[i].Key, out[j].Key)
	})
	return out
}

func sortKeys(keys []ChunkKey) {
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
}

func keyLess(a, b ChunkKey) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// Package tilemap bakes tile maps into static per-chunk draw batches and
// streams those chunks in and out of the active draw list.
package tilemap

import (
	"math"

	"github.com/Faultbox/beyond-sight/internal/engine/collision"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
)

// ChunkKey addresses a square block of tiles in chunk coordinates.
type ChunkKey struct {
	X, Y int
}

// ChunkOf returns the chunk containing world point (x, y) for chunks of
// the given world size. Negative coordinates round toward minus infinity.
func ChunkOf(x, y, size float64) ChunkKey {
	return ChunkKey{
		X: int(math.Floor(x / size)),
		Y: int(math.Floor(y / size)),
	}
}

// Pass selects the draw pass a quad belongs to.
type Pass int

const (
	Background Pass = iota // Drawn below actors
	Foreground             // Drawn above actors
)

func (p Pass) String() string {
	if p == Foreground {
		return "foreground"
	}
	return "background"
}

// Vertex is a 2D textured vertex.
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// Batch is one draw call: quads sharing a texture and a layer tint.
type Batch struct {
	Texture  tileatlas.Texture
	Opacity  float32
	Vertices []Vertex
	Indices  []uint32

	layer int // last source layer appended
}

// Quads returns the number of quads in the batch.
func (b *Batch) Quads() int {
	return len(b.Vertices) / 4
}

// ChunkGroup holds the ordered batches of one chunk in one pass.
type ChunkGroup struct {
	Key     ChunkKey
	Batches []*Batch
}

// Stats summarises a bake.
type Stats struct {
	Layers        int // Layers that contributed geometry or were empty
	SkippedLayers int // Hidden, unsupported or undecodable layers
	Quads         int
	Unresolved    int // Non-empty GIDs with no tileset
}

// Baked is the immutable result of building a map.
type Baked struct {
	Background map[ChunkKey]*ChunkGroup
	Foreground map[ChunkKey]*ChunkGroup
	Solids     *collision.SolidSet

	// World size in world units.
	Width, Height float64

	// Edge of a chunk in world units.
	ChunkSize float64

	Stats Stats
}

// Empty returns a baked map with no geometry, used when a map fails to load.
func Empty(chunkSize float64) *Baked {
	return &Baked{
		Background: make(map[ChunkKey]*ChunkGroup),
		Foreground: make(map[ChunkKey]*ChunkGroup),
		Solids:     collision.NewSolidSet(),
		ChunkSize:  chunkSize,
	}
}

// Group returns the chunk group for key in pass p, or nil.
func (b *Baked) Group(p Pass, key ChunkKey) *ChunkGroup {
	if p == Foreground {
		return b.Foreground[key]
	}
	return b.Background[key]
}

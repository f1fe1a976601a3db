// Package tileatlas slices tileset images into per-tile UV rectangles and
// resolves global tile IDs to texture regions.
//
// UVs follow a bottom-left texture origin: row 0 of a tileset image is the
// top of the image, so tile rows are inverted before normalisation.
package tileatlas

import (
	"errors"

	"github.com/lafriks/go-tiled"

	"github.com/Faultbox/beyond-sight/pkg/formats"
)

// ErrTilesetResolution reports a tileset or its image that could not be found or loaded.
var ErrTilesetResolution = errors.New("tileset resolution failed")

// DefaultPadding is the inward UV inset in texels that stops neighbouring
// tiles bleeding in under bilinear sampling.
const DefaultPadding = 0.05

// Texture identifies a decoded atlas image.
// ID is an opaque handle owned by the loader (a GL texture name in the client).
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// UVRect is a normalised texture rectangle. (U0,V0) is the bottom-left corner.
type UVRect struct {
	U0, V0, U1, V1 float32
}

// Descriptor describes one resolved tile.
type Descriptor struct {
	Texture Texture
	Tileset string
	UV      UVRect

	// Native tile size in source pixels.
	TileW, TileH int

	// Tile origin in the atlas, with Y measured from the bottom of the image.
	AtlasX, AtlasInvY int
}

// Registry maps stripped GIDs to tile descriptors.
// It is filled once during map load and read-only afterwards.
type Registry struct {
	tiles    map[uint32]Descriptor
	tilesets []string
	padding  float32
}

// NewRegistry creates an empty registry using the given UV padding in texels.
func NewRegistry(padding float32) *Registry {
	if padding < 0 {
		padding = 0
	}
	return &Registry{
		tiles:   make(map[uint32]Descriptor),
		padding: padding,
	}
}

// AddTileset slices a tileset into descriptors starting at firstGID.
// Returns the number of tiles registered.
func (r *Registry) AddTileset(firstGID uint32, ts *tiled.Tileset, tex Texture) int {
	if ts == nil || tex.Width <= 0 || tex.Height <= 0 {
		return 0
	}

	tw, th := ts.TileWidth, ts.TileHeight
	columns := ts.Columns
	if columns <= 0 {
		columns = 1
	}

	// Inversion uses the image's own height, not the texture allocation.
	imageH := tex.Height
	if ts.Image != nil && ts.Image.Height > 0 {
		imageH = ts.Image.Height
	}

	for i := 0; i < ts.TileCount; i++ {
		col := i % columns
		row := i / columns

		x := ts.Margin + col*(tw+ts.Spacing)
		y := ts.Margin + row*(th+ts.Spacing)
		invY := imageH - y - th

		r.tiles[firstGID+uint32(i)] = Descriptor{
			Texture:   tex,
			Tileset:   ts.Name,
			UV:        r.region(tex, x, invY, tw, th),
			TileW:     tw,
			TileH:     th,
			AtlasX:    x,
			AtlasInvY: invY,
		}
	}

	r.tilesets = append(r.tilesets, ts.Name)
	return ts.TileCount
}

// Resolve looks up a GID after stripping its flip bits.
func (r *Registry) Resolve(gid formats.GID) (Descriptor, bool) {
	if gid.Empty() {
		return Descriptor{}, false
	}
	d, ok := r.tiles[gid.ID()]
	return d, ok
}

// RegionUV returns the padded UV rectangle for a footprint of w x h source
// pixels anchored at the descriptor's top-left corner. A footprint equal to
// the native tile size yields the descriptor's own UV.
func (r *Registry) RegionUV(d Descriptor, w, h int) UVRect {
	if w == d.TileW && h == d.TileH {
		return d.UV
	}
	invY := d.AtlasInvY + d.TileH - h
	return r.region(d.Texture, d.AtlasX, invY, w, h)
}

// Len returns the number of registered tiles.
func (r *Registry) Len() int {
	return len(r.tiles)
}

// Tilesets returns the names of the registered tilesets in load order.
func (r *Registry) Tilesets() []string {
	return r.tilesets
}

// region normalises a pixel rectangle and insets it by the padding.
func (r *Registry) region(tex Texture, x, y, w, h int) UVRect {
	texW := float32(tex.Width)
	texH := float32(tex.Height)
	padX := r.padding / texW
	padY := r.padding / texH

	return UVRect{
		U0: float32(x)/texW + padX,
		V0: float32(y)/texH + padY,
		U1: float32(x+w)/texW - padX,
		V1: float32(y+h)/texH - padY,
	}
}

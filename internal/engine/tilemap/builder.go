package tilemap

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/logger"
	"github.com/Faultbox/beyond-sight/pkg/formats"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Options controls how a map is baked.
type Options struct {
	TileSize  float64 // Logical tile size in world units
	ChunkSize float64 // Chunk edge in world units
	UVPadding float32 // Anti-bleed inset in texels

	// Case-insensitive substrings of layer names.
	ForegroundKeywords []string
	WallKeywords       []string

	// Tall props split into a solid base and a walk-behind top.
	CompositeTilesets      []string
	CompositeSolidFraction float64
	CompositeInset         float64
}

// OptionsFromConfig derives bake options from the world config.
func OptionsFromConfig(w config.WorldConfig) Options {
	return Options{
		TileSize:               w.TileSize,
		ChunkSize:              w.ChunkWorldSize(),
		UVPadding:              float32(w.UVPadding),
		ForegroundKeywords:     w.ForegroundLayerKeywords,
		WallKeywords:           w.WallLayerKeywords,
		CompositeTilesets:      w.Composite.Tilesets,
		CompositeSolidFraction: w.Composite.SolidFraction,
		CompositeInset:         w.Composite.Inset,
	}
}

// LoadFile parses the map at path, resolves its tilesets through loader and
// bakes it. When the map itself cannot be read the returned Baked is empty
// and the error wraps formats.ErrMapLoad.
func LoadFile(path string, loader tileatlas.TextureLoader, opts Options) (*Baked, error) {
	doc, err := formats.ParseTMJFile(path)
	if err != nil {
		return Empty(opts.ChunkSize), err
	}
	reg := tileatlas.Load(doc, filepath.Dir(path), loader, opts.UVPadding)
	return Build(doc, reg, opts), nil
}

// builder carries the state of one bake.
type builder struct {
	opts  Options
	reg   *tileatlas.Registry
	scale float64
	out   *Baked
	log   *zap.Logger
}

// quad is a positioned, textured rectangle ready for batching.
type quad struct {
	x, y, w, h float64
	uv         Corners
	tex        tileatlas.Texture
}

// Build bakes every visible tile and object layer of doc into per-chunk
// batches and collects static solids. Layers that fail to decode are
// logged and skipped.
func Build(doc *formats.TMJ, reg *tileatlas.Registry, opts Options) *Baked {
	out := Empty(opts.ChunkSize)
	if doc == nil {
		return out
	}
	if reg == nil {
		reg = tileatlas.NewRegistry(opts.UVPadding)
	}

	srcTileW := doc.TileWidth
	if srcTileW <= 0 {
		srcTileW = int(opts.TileSize)
	}

	b := &builder{
		opts:  opts,
		reg:   reg,
		scale: opts.TileSize / float64(srcTileW),
		out:   out,
		log:   logger.Named("tilemap"),
	}

	out.Width = float64(doc.Width*doc.TileWidth) * b.scale
	out.Height = float64(doc.Height*doc.TileHeight) * b.scale

	for i := range doc.Layers {
		layer := &doc.Layers[i]
		if !layer.IsVisible() {
			out.Stats.SkippedLayers++
			continue
		}

		var err error
		switch layer.Type {
		case formats.LayerTypeTile:
			err = b.tileLayer(doc, i, layer)
		case formats.LayerTypeObject:
			b.objectLayer(doc, i, layer)
		default:
			err = fmt.Errorf("unsupported layer type %q", layer.Type)
		}
		if err != nil {
			out.Stats.SkippedLayers++
			b.log.Warn("skipping layer",
				zap.String("layer", layer.Name),
				zap.Error(err))
			continue
		}
		out.Stats.Layers++
	}

	b.log.Debug("map baked",
		zap.Int("layers", out.Stats.Layers),
		zap.Int("skipped", out.Stats.SkippedLayers),
		zap.Int("quads", out.Stats.Quads),
		zap.Int("bg_chunks", len(out.Background)),
		zap.Int("fg_chunks", len(out.Foreground)),
		zap.Int("solids", out.Solids.Len()))

	return out
}

func (b *builder) tileLayer(doc *formats.TMJ, index int, layer *formats.TMJLayer) error {
	w, h := doc.LayerSize(layer)
	tiles, err := layer.DecodeTiles(w, h)
	if err != nil {
		return err
	}

	pass := b.passFor(layer.Name)
	wall := matchAny(layer.Name, b.opts.WallKeywords)
	cellW := float64(doc.TileWidth) * b.scale
	cellH := float64(doc.TileHeight) * b.scale
	opacity := layer.Alpha()

	for i, gid := range tiles {
		if gid.Empty() {
			continue
		}
		d, ok := b.reg.Resolve(gid)
		if !ok {
			b.out.Stats.Unresolved++
			continue
		}

		col := i % w
		row := i / w
		x := float64(col) * cellW
		y := float64(h-1-row) * cellH

		b.add(pass, index, opacity, quad{
			x: x, y: y,
			w:   float64(d.TileW) * b.scale,
			h:   float64(d.TileH) * b.scale,
			uv:  FlipUVs(d.UV, gid),
			tex: d.Texture,
		})
		if wall {
			b.out.Solids.Add(math.Rect{X: x, Y: y, W: cellW, H: cellH})
		}
	}
	return nil
}

func (b *builder) objectLayer(doc *formats.TMJ, index int, layer *formats.TMJLayer) {
	pass := b.passFor(layer.Name)
	wall := matchAny(layer.Name, b.opts.WallKeywords)
	opacity := layer.Alpha()
	mapHeightPx := float64(doc.PixelHeight())

	for i := range layer.Objects {
		obj := &layer.Objects[i]
		if obj.GID.Empty() {
			continue
		}
		d, ok := b.reg.Resolve(obj.GID)
		if !ok {
			b.out.Stats.Unresolved++
			continue
		}

		pw, ph := d.TileW, d.TileH
		if ow, oh, sized := obj.Size(); sized {
			pw, ph = int(ow), int(oh)
		}
		uv := d.UV
		if pw != d.TileW || ph != d.TileH {
			uv = b.reg.RegionUV(d, pw, ph)
		}

		q := quad{
			x:   obj.X * b.scale,
			y:   (mapHeightPx - obj.Y) * b.scale,
			w:   float64(pw) * b.scale,
			h:   float64(ph) * b.scale,
			uv:  FlipUVs(uv, obj.GID),
			tex: d.Texture,
		}

		if b.isComposite(d, pw, ph) {
			b.addComposite(index, opacity, q)
			continue
		}

		b.add(pass, index, opacity, q)
		if wall {
			b.out.Solids.Add(math.Rect{X: q.x, Y: q.y, W: q.w, H: q.h})
		}
	}
}

// isComposite reports whether an object is a tall prop drawn larger than
// its native tile from one of the configured tilesets.
func (b *builder) isComposite(d tileatlas.Descriptor, pw, ph int) bool {
	if pw <= d.TileW && ph <= d.TileH {
		return false
	}
	for _, name := range b.opts.CompositeTilesets {
		if strings.EqualFold(name, d.Tileset) {
			return true
		}
	}
	return false
}

// addComposite splits q: the lower fraction is background and solid, the
// rest is foreground only.
func (b *builder) addComposite(layer int, opacity float32, q quad) {
	f := b.opts.CompositeSolidFraction
	lowerUV, upperUV := q.uv.SplitAt(float32(f))
	lowerH := q.h * f

	if lowerH > 0 {
		b.add(Background, layer, opacity, quad{x: q.x, y: q.y, w: q.w, h: lowerH, uv: lowerUV, tex: q.tex})
		solid := math.Rect{X: q.x, Y: q.y, W: q.w, H: lowerH}.InsetX(b.opts.CompositeInset)
		b.out.Solids.Add(solid)
	}
	if upperH := q.h - lowerH; upperH > 0 {
		b.add(Foreground, layer, opacity, quad{x: q.x, y: q.y + lowerH, w: q.w, h: upperH, uv: upperUV, tex: q.tex})
	}
}

// add appends q to the batch for its chunk. Within a chunk, batches keep
// layer order; a layer reuses its own batch for a texture, and a new batch
// folds into the chunk's last one when texture and tint match.
func (b *builder) add(pass Pass, layer int, opacity float32, q quad) {
	key := ChunkOf(q.x, q.y, b.opts.ChunkSize)

	groups := b.out.Background
	if pass == Foreground {
		groups = b.out.Foreground
	}
	g := groups[key]
	if g == nil {
		g = &ChunkGroup{Key: key}
		groups[key] = g
	}

	batch := g.find(layer, q.tex.ID, opacity)
	if batch == nil {
		batch = &Batch{Texture: q.tex, Opacity: opacity, layer: layer}
		g.Batches = append(g.Batches, batch)
	}
	batch.layer = layer

	x0, y0 := float32(q.x), float32(q.y)
	x1, y1 := float32(q.x+q.w), float32(q.y+q.h)
	base := uint32(len(batch.Vertices))
	batch.Vertices = append(batch.Vertices,
		Vertex{Position: [2]float32{x0, y0}, TexCoord: [2]float32{q.uv[0], q.uv[1]}},
		Vertex{Position: [2]float32{x1, y0}, TexCoord: [2]float32{q.uv[2], q.uv[3]}},
		Vertex{Position: [2]float32{x1, y1}, TexCoord: [2]float32{q.uv[4], q.uv[5]}},
		Vertex{Position: [2]float32{x0, y1}, TexCoord: [2]float32{q.uv[6], q.uv[7]}},
	)
	batch.Indices = append(batch.Indices,
		base, base+1, base+2,
		base+2, base+3, base)

	b.out.Stats.Quads++
}

// find returns the batch q should join, or nil when a new one is needed.
func (g *ChunkGroup) find(layer int, texID uint32, opacity float32) *Batch {
	for i := len(g.Batches) - 1; i >= 0 && g.Batches[i].layer == layer; i-- {
		if g.Batches[i].Texture.ID == texID {
			return g.Batches[i]
		}
	}
	if n := len(g.Batches); n > 0 {
		last := g.Batches[n-1]
		if last.layer != layer && last.Texture.ID == texID && last.Opacity == opacity {
			return last
		}
	}
	return nil
}

func (b *builder) passFor(name string) Pass {
	if matchAny(name, b.opts.ForegroundKeywords) {
		return Foreground
	}
	return Background
}

func matchAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

package tileatlas

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/assets"
	"github.com/Faultbox/beyond-sight/internal/logger"
	"github.com/Faultbox/beyond-sight/pkg/formats"
)

// TextureLoader decodes an image file and hands back a texture handle.
type TextureLoader interface {
	LoadTexture(path string) (Texture, error)
}

// Load builds a registry for every tileset the map references.
// Descriptors are looked up under <mapDir>/.tsx and images under <mapDir>/prop
// before falling back to a recursive search. A tileset that cannot be resolved
// is logged and skipped; its GIDs stay unresolved.
func Load(doc *formats.TMJ, mapDir string, loader TextureLoader, padding float32) *Registry {
	reg := NewRegistry(padding)
	if doc == nil {
		return reg
	}

	for _, ref := range doc.Tilesets {
		if ref.Source == "" {
			continue
		}
		n, err := reg.LoadTileset(ref, mapDir, doc.TileWidth, doc.TileHeight, loader)
		if err != nil {
			logger.Warn("skipping tileset",
				zap.String("source", ref.Source),
				zap.Error(err))
			continue
		}
		logger.Debug("tileset loaded",
			zap.String("source", ref.Source),
			zap.Uint32("firstgid", ref.FirstGID),
			zap.Int("tiles", n))
	}

	return reg
}

// LoadTileset resolves, parses and slices a single tileset reference.
// Errors wrap ErrTilesetResolution.
func (r *Registry) LoadTileset(ref formats.TMJTilesetRef, mapDir string, defaultTileW, defaultTileH int, loader TextureLoader) (int, error) {
	tsxPath, err := assets.Find(mapDir, assets.TilesetDir, ref.Source)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTilesetResolution, err)
	}

	ts, err := formats.ParseTSXFile(tsxPath, defaultTileW, defaultTileH)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTilesetResolution, tsxPath, err)
	}
	if ts.Name == "" {
		ts.Name = tilesetName(ref.Source)
	}

	imgPath, err := assets.Find(mapDir, assets.ImageDir, ts.Image.Source)
	if err != nil {
		return 0, fmt.Errorf("%w: image for %s: %w", ErrTilesetResolution, ts.Name, err)
	}

	tex, err := loader.LoadTexture(imgPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrTilesetResolution, imgPath, err)
	}

	firstGID := ref.FirstGID
	if firstGID == 0 {
		firstGID = 1
	}
	return r.AddTileset(firstGID, ts, tex), nil
}

// tilesetName derives a tileset name from its file name.
func tilesetName(source string) string {
	base := filepath.Base(source)
	return base[:len(base)-len(filepath.Ext(base))]
}

package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"

	"github.com/lafriks/go-tiled"
)

// TSX format errors.
var (
	ErrInvalidTSX   = errors.New("invalid tileset descriptor")
	ErrTSXNoImage   = errors.New("tileset has no image")
	ErrTSXNoColumns = errors.New("tileset has no columns")
)

// ParseTSX parses an XML tileset descriptor.
// Geometry fields missing from the descriptor default to the given tile size
// and a single column, matching how Tiled treats legacy files.
func ParseTSX(data []byte, defaultTileW, defaultTileH int) (*tiled.Tileset, error) {
	var ts tiled.Tileset
	if err := xml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTSX, err)
	}

	if ts.Image == nil || ts.Image.Source == "" {
		return nil, ErrTSXNoImage
	}
	if ts.TileWidth <= 0 {
		ts.TileWidth = defaultTileW
	}
	if ts.TileHeight <= 0 {
		ts.TileHeight = defaultTileH
	}
	if ts.Columns <= 0 {
		ts.Columns = 1
	}
	if ts.TileCount < 0 {
		return nil, fmt.Errorf("%w: negative tile count %d", ErrInvalidTSX, ts.TileCount)
	}

	return &ts, nil
}

// ParseTSXFile parses a tileset descriptor from disk.
func ParseTSXFile(path string, defaultTileW, defaultTileH int) (*tiled.Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TSX file: %w", err)
	}
	return ParseTSX(data, defaultTileW, defaultTileH)
}

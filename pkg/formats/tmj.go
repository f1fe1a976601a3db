package formats

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// TMJ format errors.
var (
	ErrMapLoad             = errors.New("map load failed")
	ErrLayerDecode         = errors.New("layer decode failed")
	ErrUnsupportedEncoding = errors.New("unsupported layer encoding")
)

// Layer type names used by the JSON map format.
const (
	LayerTypeTile   = "tilelayer"
	LayerTypeObject = "objectgroup"
)

// Default source tile size when the map omits tilewidth/tileheight.
const defaultSourceTileSize = 16

// TMJ represents a parsed JSON tile map.
type TMJ struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	TileWidth  int             `json:"tilewidth"`
	TileHeight int             `json:"tileheight"`
	Tilesets   []TMJTilesetRef `json:"tilesets"`
	Layers     []TMJLayer      `json:"layers"`
}

// TMJTilesetRef references an external tileset descriptor.
type TMJTilesetRef struct {
	FirstGID uint32 `json:"firstgid"`
	Source   string `json:"source"`
}

// TMJLayer is either a tile layer or an object group; Type tells which.
type TMJLayer struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Visible     *bool           `json:"visible,omitempty"`
	Opacity     *float64        `json:"opacity,omitempty"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Data        json.RawMessage `json:"data,omitempty"`
	Encoding    string          `json:"encoding,omitempty"`
	Compression string          `json:"compression,omitempty"`
	Objects     []TMJObject     `json:"objects,omitempty"`
}

// TMJObject is a tile object placed in an object group.
// Width and Height are optional and, when set, override the tileset's
// native tile size for this instance.
type TMJObject struct {
	GID    GID      `json:"gid"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// IsVisible returns the layer visibility (true when unspecified).
func (l *TMJLayer) IsVisible() bool {
	return l.Visible == nil || *l.Visible
}

// Alpha returns the layer opacity (1 when unspecified).
func (l *TMJLayer) Alpha() float32 {
	if l.Opacity == nil {
		return 1
	}
	return float32(*l.Opacity)
}

// Size returns the explicit object size, if any.
// A zero or missing dimension is treated as unspecified.
func (o *TMJObject) Size() (w, h float64, ok bool) {
	if o.Width == nil || o.Height == nil || *o.Width <= 0 || *o.Height <= 0 {
		return 0, 0, false
	}
	return *o.Width, *o.Height, true
}

// PixelWidth returns the map width in source pixels.
func (m *TMJ) PixelWidth() int {
	return m.Width * m.TileWidth
}

// PixelHeight returns the map height in source pixels.
func (m *TMJ) PixelHeight() int {
	return m.Height * m.TileHeight
}

// ParseTMJ parses a JSON tile map from raw bytes.
func ParseTMJ(data []byte) (*TMJ, error) {
	var m TMJ
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMapLoad, err)
	}

	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid map dimensions %dx%d", ErrMapLoad, m.Width, m.Height)
	}
	if m.TileWidth <= 0 {
		m.TileWidth = defaultSourceTileSize
	}
	if m.TileHeight <= 0 {
		m.TileHeight = defaultSourceTileSize
	}

	return &m, nil
}

// ParseTMJFile parses a JSON tile map from disk.
func ParseTMJFile(path string) (*TMJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMapLoad, path, err)
	}
	return ParseTMJ(data)
}

// LayerSize returns the layer grid size, falling back to the map size.
func (m *TMJ) LayerSize(l *TMJLayer) (int, int) {
	w, h := l.Width, l.Height
	if w <= 0 {
		w = m.Width
	}
	if h <= 0 {
		h = m.Height
	}
	return w, h
}

// DecodeTiles returns the flat row-major GID array of a tile layer.
// Base64 payloads may be zlib or gzip compressed and must decode to exactly
// width*height little-endian uint32 values. Plain arrays are used as-is.
func (l *TMJLayer) DecodeTiles(width, height int) ([]GID, error) {
	if l.Type != LayerTypeTile {
		return nil, fmt.Errorf("%w: layer %q is %q, not a tile layer", ErrLayerDecode, l.Name, l.Type)
	}
	if len(l.Data) == 0 {
		return nil, fmt.Errorf("%w: layer %q has no data", ErrLayerDecode, l.Name)
	}

	switch l.Encoding {
	case "", "csv":
		var tiles []GID
		if err := json.Unmarshal(l.Data, &tiles); err != nil {
			return nil, fmt.Errorf("%w: layer %q: %v", ErrLayerDecode, l.Name, err)
		}
		return tiles, nil
	case "base64":
		var payload string
		if err := json.Unmarshal(l.Data, &payload); err != nil {
			return nil, fmt.Errorf("%w: layer %q: base64 data is not a string", ErrLayerDecode, l.Name)
		}
		raw, err := decodeBase64Payload(payload, l.Compression)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %q: %w", ErrLayerDecode, l.Name, err)
		}
		return unpackGIDs(raw, width*height)
	default:
		return nil, fmt.Errorf("%w: layer %q: %w %q", ErrLayerDecode, l.Name, ErrUnsupportedEncoding, l.Encoding)
	}
}

// decodeBase64Payload base64-decodes and optionally inflates a layer payload.
func decodeBase64Payload(payload, compression string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}

	var r io.ReadCloser
	switch compression {
	case "":
		return decoded, nil
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(decoded))
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(decoded))
	default:
		return nil, fmt.Errorf("%w: compression %q", ErrUnsupportedEncoding, compression)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", compression, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", compression, err)
	}
	return out, nil
}

// unpackGIDs converts little-endian packed uint32 values into GIDs.
func unpackGIDs(raw []byte, count int) ([]GID, error) {
	if count <= 0 || len(raw) != count*4 {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrLayerDecode, count*4, len(raw))
	}
	tiles := make([]GID, count)
	for i := range tiles {
		tiles[i] = GID(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return tiles, nil
}

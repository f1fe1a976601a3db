package formats

import "fmt"

// GID is a global tile identifier as stored in map data.
// The top three bits carry flip flags; the remaining bits index into the
// combined tileset ID space (tileset firstgid + local tile id).
type GID uint32

// Flip flags embedded in a raw GID.
const (
	FlipHorizontal GID = 0x80000000
	FlipVertical   GID = 0x40000000
	FlipDiagonal   GID = 0x20000000

	// FlipMask covers all three flag bits.
	FlipMask = FlipHorizontal | FlipVertical | FlipDiagonal
)

// ID returns the GID with all flip flags cleared.
func (g GID) ID() uint32 {
	return uint32(g &^ FlipMask)
}

// Empty reports whether the GID refers to no tile.
func (g GID) Empty() bool {
	return g.ID() == 0
}

// FlippedHorizontally reports whether the horizontal flip bit is set.
func (g GID) FlippedHorizontally() bool {
	return g&FlipHorizontal != 0
}

// FlippedVertically reports whether the vertical flip bit is set.
func (g GID) FlippedVertically() bool {
	return g&FlipVertical != 0
}

// FlippedDiagonally reports whether the diagonal (anti-diagonal transpose) bit is set.
func (g GID) FlippedDiagonally() bool {
	return g&FlipDiagonal != 0
}

// String returns the id with flip flags in a compact form, e.g. "5[HD]".
func (g GID) String() string {
	flags := ""
	if g.FlippedHorizontally() {
		flags += "H"
	}
	if g.FlippedVertically() {
		flags += "V"
	}
	if g.FlippedDiagonally() {
		flags += "D"
	}
	if flags == "" {
		return fmt.Sprintf("%d", g.ID())
	}
	return fmt.Sprintf("%d[%s]", g.ID(), flags)
}

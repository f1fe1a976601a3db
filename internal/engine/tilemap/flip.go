package tilemap

import (
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/pkg/formats"
)

// Corners holds per-corner UVs in quad order: bottom-left, bottom-right,
// top-right, top-left, as (u, v) pairs.
type Corners [8]float32

// FlipUVs maps a tile's UV rectangle onto quad corners honouring the flip
// bits carried by gid. Horizontal and vertical flips swap the U and V
// extents; the diagonal flip then transposes the corner assignment.
func FlipUVs(uv tileatlas.UVRect, gid formats.GID) Corners {
	u0, v0, u1, v1 := uv.U0, uv.V0, uv.U1, uv.V1
	if gid.FlippedHorizontally() {
		u0, u1 = u1, u0
	}
	if gid.FlippedVertically() {
		v0, v1 = v1, v0
	}
	if gid.FlippedDiagonally() {
		return Corners{u1, v0, u1, v1, u0, v1, u0, v0}
	}
	return Corners{u0, v0, u1, v0, u1, v1, u0, v1}
}

// Corner returns the (u, v) of corner i.
func (c Corners) Corner(i int) (float32, float32) {
	return c[2*i], c[2*i+1]
}

// SplitAt cuts the quad horizontally at fraction f of its height and
// returns the lower and upper corner sets. Interpolation runs along the
// left and right edges, so any flip combination splits correctly.
func (c Corners) SplitAt(f float32) (lower, upper Corners) {
	lerp := func(a, b float32) float32 { return a + (b-a)*f }

	// Left edge runs BL(0) -> TL(3), right edge BR(1) -> TR(2).
	ml := [2]float32{lerp(c[0], c[6]), lerp(c[1], c[7])}
	mr := [2]float32{lerp(c[2], c[4]), lerp(c[3], c[5])}

	lower = Corners{c[0], c[1], c[2], c[3], mr[0], mr[1], ml[0], ml[1]}
	upper = Corners{ml[0], ml[1], mr[0], mr[1], c[4], c[5], c[6], c[7]}
	return lower, upper
}

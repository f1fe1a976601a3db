package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/engine/tilemap"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// FullUV covers a whole texture.
var FullUV = tileatlas.UVRect{U0: 0, V0: 0, U1: 1, V1: 1}

func (r *Renderer) createQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 4*int(vertexStride), nil, gl.STREAM_DRAW)

	indices := []uint32{0, 1, 2, 2, 3, 0}
	gl.GenBuffers(1, &r.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	setLayout()
	gl.BindVertexArray(0)
}

// DrawQuad draws one textured rectangle. A zero texture draws flat tint.
func (r *Renderer) DrawQuad(tex tileatlas.Texture, uv tileatlas.UVRect, rect math.Rect, tint Tint) {
	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.W), float32(rect.Y+rect.H)
	verts := [4]tilemap.Vertex{
		{Position: [2]float32{x0, y0}, TexCoord: [2]float32{uv.U0, uv.V0}},
		{Position: [2]float32{x1, y0}, TexCoord: [2]float32{uv.U1, uv.V0}},
		{Position: [2]float32{x1, y1}, TexCoord: [2]float32{uv.U1, uv.V1}},
		{Position: [2]float32{x0, y1}, TexCoord: [2]float32{uv.U0, uv.V1}},
	}

	r.bind(tex, tint)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*int(vertexStride), unsafe.Pointer(&verts[0]))
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_INT, nil)
	r.stats.DrawCalls++
	r.stats.Quads++
}

// FillRect draws a flat-coloured rectangle.
func (r *Renderer) FillRect(rect math.Rect, tint Tint) {
	r.DrawQuad(tileatlas.Texture{}, FullUV, rect, tint)
}

// StrokeRect outlines rect with lines of the given thickness.
func (r *Renderer) StrokeRect(rect math.Rect, thickness float64, tint Tint) {
	t := thickness
	r.FillRect(math.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: t}, tint)
	r.FillRect(math.Rect{X: rect.X, Y: rect.Y + rect.H - t, W: rect.W, H: t}, tint)
	r.FillRect(math.Rect{X: rect.X, Y: rect.Y + t, W: t, H: rect.H - 2*t}, tint)
	r.FillRect(math.Rect{X: rect.X + rect.W - t, Y: rect.Y + t, W: t, H: rect.H - 2*t}, tint)
}

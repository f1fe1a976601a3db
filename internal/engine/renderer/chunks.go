package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/beyond-sight/internal/engine/tilemap"
)

const vertexStride = int32(unsafe.Sizeof(tilemap.Vertex{}))

// mesh is an uploaded batch.
type mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func (m *mesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// ChunkAttached implements tilemap.Listener by uploading the group's batches.
func (r *Renderer) ChunkAttached(_ tilemap.Pass, g *tilemap.ChunkGroup) {
	for _, b := range g.Batches {
		if _, ok := r.meshes[b]; ok || len(b.Indices) == 0 {
			continue
		}
		r.meshes[b] = upload(b.Vertices, b.Indices, gl.STATIC_DRAW)
	}
}

// ChunkDetached implements tilemap.Listener by freeing the group's buffers.
func (r *Renderer) ChunkDetached(_ tilemap.Pass, g *tilemap.ChunkGroup) {
	for _, b := range g.Batches {
		if m, ok := r.meshes[b]; ok {
			m.delete()
			delete(r.meshes, b)
		}
	}
}

// DrawGroups draws chunk groups in order, batches in their baked order.
func (r *Renderer) DrawGroups(groups []*tilemap.ChunkGroup) {
	for _, g := range groups {
		for _, b := range g.Batches {
			m, ok := r.meshes[b]
			if !ok {
				continue
			}
			r.bind(b.Texture, Tint{1, 1, 1, b.Opacity})
			gl.BindVertexArray(m.vao)
			gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
			r.stats.DrawCalls++
			r.stats.Quads += b.Quads()
		}
	}
}

func upload(vertices []tilemap.Vertex, indices []uint32, usage uint32) *mesh {
	m := &mesh{count: int32(len(indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), unsafe.Pointer(&vertices[0]), usage)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), usage)

	setLayout()
	gl.BindVertexArray(0)
	return m
}

// setLayout describes tilemap.Vertex to the bound VAO.
func setLayout() {
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, 8)
	gl.EnableVertexAttribArray(1)
}

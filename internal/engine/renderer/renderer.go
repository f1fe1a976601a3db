// Package renderer draws baked tile chunks and actor sprites with OpenGL.
package renderer

import (
	"fmt"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/assets"
	"github.com/Faultbox/beyond-sight/internal/engine/shader"
	"github.com/Faultbox/beyond-sight/internal/engine/texture"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/engine/tilemap"
	"github.com/Faultbox/beyond-sight/internal/logger"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

// Tint multiplies sampled texels.
type Tint [4]float32

// White leaves texels unchanged.
var White = Tint{1, 1, 1, 1}

// Config holds renderer settings.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the sprite program, uploaded textures and chunk meshes.
// It must be created after the GL context.
type Renderer struct {
	config  Config
	program *shader.Program
	assets  *assets.Manager
	log     *zap.Logger

	// 1x1 white texture for flat-coloured quads.
	white tileatlas.Texture

	textures map[string]tileatlas.Texture
	meshes   map[*tilemap.Batch]*mesh

	// Streaming quad for sprites.
	quadVAO, quadVBO, quadEBO uint32

	stats FrameStats
}

// FrameStats counts the work of the last frame.
type FrameStats struct {
	DrawCalls int
	Quads     int
}

// New initialises GL and creates the renderer.
func New(cfg Config, am *assets.Manager) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		assets:   am,
		log:      logger.Named("renderer"),
		textures: make(map[string]tileatlas.Texture),
		meshes:   make(map[*tilemap.Batch]*mesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.05, 0.05, 0.08, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(shader.SpriteVertex, shader.SpriteFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create sprite shader: %w", err)
	}

	r.white = r.Upload(texture.Solid(color.RGBA{R: 255, G: 255, B: 255, A: 255}))
	r.createQuad()

	return r, nil
}

// Close releases every GL object.
func (r *Renderer) Close() {
	r.log.Info("closing renderer",
		zap.Int("textures", len(r.textures)),
		zap.Int("meshes", len(r.meshes)))

	for b, m := range r.meshes {
		m.delete()
		delete(r.meshes, b)
	}
	for path, tex := range r.textures {
		gl.DeleteTextures(1, &tex.ID)
		delete(r.textures, path)
	}
	if r.white.ID != 0 {
		gl.DeleteTextures(1, &r.white.ID)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		gl.DeleteBuffers(1, &r.quadVBO)
		gl.DeleteBuffers(1, &r.quadEBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the frame and binds the world projection.
func (r *Renderer) Begin(projection math.Mat4) {
	r.stats = FrameStats{}
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.program.Use()
	r.program.SetMat4("uProjection", projection)
	r.program.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// SetProjection rebinds the projection mid-frame, e.g. for screen-space UI.
func (r *Renderer) SetProjection(projection math.Mat4) {
	r.program.Use()
	r.program.SetMat4("uProjection", projection)
}

// End unbinds frame state.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

func (r *Renderer) bind(tex tileatlas.Texture, tint Tint) {
	if tex.ID == 0 {
		tex = r.white
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)
	r.program.SetVec4("uTint", tint[0], tint[1], tint[2], tint[3])
}

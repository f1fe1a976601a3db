package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/engine/texture"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
)

// LoadTexture implements tileatlas.TextureLoader. Textures are cached by
// path and uploaded bottom row first so V grows upward.
func (r *Renderer) LoadTexture(path string) (tileatlas.Texture, error) {
	if tex, ok := r.textures[path]; ok {
		return tex, nil
	}

	data, err := r.assets.Load(path)
	if err != nil {
		return tileatlas.Texture{}, err
	}
	img, format, err := texture.Decode(data)
	if err != nil {
		return tileatlas.Texture{}, fmt.Errorf("%s: %w", path, err)
	}

	tex := r.Upload(texture.ToRGBA(img, format))
	r.textures[path] = tex
	r.log.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))
	return tex, nil
}

// Upload creates a GL texture from img with nearest filtering for pixel art.
func (r *Renderer) Upload(img *image.RGBA) tileatlas.Texture {
	flipped := texture.FlipVertical(img)
	b := flipped.Bounds()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return tileatlas.Texture{ID: id, Width: b.Dx(), Height: b.Dy()}
}

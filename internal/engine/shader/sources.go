package shader

// SpriteVertex transforms 2D world positions; layout matches tilemap.Vertex.
const SpriteVertex = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uProjection;

out vec2 vUV;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
}
`

// SpriteFragment samples the bound texture and multiplies by uTint.
// Flat-coloured quads bind a 1x1 white texture.
const SpriteFragment = `#version 410 core
in vec2 vUV;

uniform sampler2D uTexture;
uniform vec4 uTint;

out vec4 FragColor;

void main() {
	vec4 c = texture(uTexture, vUV) * uTint;
	if (c.a < 0.01) {
		discard;
	}
	FragColor = c;
}
`

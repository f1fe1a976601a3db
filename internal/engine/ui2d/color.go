package ui2d

// Color is an RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// HUD palette.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	ColorHeartFull   = RGB(214, 40, 57)
	ColorHeartBroken = RGB(90, 20, 28)
	ColorHeartEmpty  = RGBA(60, 60, 70, 200)

	ColorStaminaBg   = Color{0.08, 0.08, 0.12, 0.85}
	ColorStamina     = RGB(90, 200, 110)
	ColorStaminaLow  = RGB(230, 160, 40)
	ColorPanelBorder = Color{0.3, 0.3, 0.4, 1}
)

// RGBA creates a colour from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates an opaque colour from 8-bit components.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// WithAlpha returns c with a different alpha.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken scales the colour toward black by factor.
func (c Color) Darken(factor float32) Color {
	return Color{c.R * (1 - factor), c.G * (1 - factor), c.B * (1 - factor), c.A}
}

// Array returns the components in shader order.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

package core

import "fmt"

// Color is a 24-bit RGB colour packed as 0xRRGGBB.
// ColorNone leaves the terminal's default colour in place.
type Color int32

// ColorNone means "use the terminal default".
const ColorNone Color = -1

// Palette used by HUD and overlays.
const (
	ColorWhite     Color = 0xF5F5F5
	ColorGray      Color = 0x8A8A8A
	ColorDarkGray  Color = 0x3A3A3A
	ColorGreen     Color = 0x10B981
	ColorYellow    Color = 0xFACC15
	ColorOrange    Color = 0xFF8700
	ColorRed       Color = 0xEF4444
	ColorCyan      Color = 0x22D3EE
	ColorPurple    Color = 0x8B5CF6
	ColorBlack     Color = 0x101010
	ColorBoardEdge Color = 0x5F5F87
)

// RGB packs three channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// RGBA unpacks the channels. ColorNone unpacks to black.
func (c Color) RGBA() (r, g, b uint8) {
	if c < 0 {
		return 0, 0, 0
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the colour as "#rrggbb", or "" for ColorNone.
func (c Color) Hex() string {
	if c < 0 {
		return ""
	}
	r, g, b := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Blend mixes c towards other by t in [0, 1].
func (c Color) Blend(other Color, t float64) Color {
	if c < 0 {
		return other
	}
	if other < 0 {
		return c
	}
	t = ClampF(t, 0, 1)
	r1, g1, b1 := c.RGBA()
	r2, g2, b2 := other.RGBA()
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGB(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

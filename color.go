package glint

import (
	"image/color"
	"strconv"

	"github.com/chewxy/math32"
)

// Color is an RGBA color with float32 channels. Channels are
// conventionally in [0, 1] but are not clamped until conversion
// to 8-bit output.
type Color struct {
	R, G, B, A float32
}

var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// HexColor parses "rgb", "rrggbb", or "#"-prefixed variants.
func HexColor(s string) Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint64
	switch len(s) {
	case 3:
		r, _ = strconv.ParseUint(s[0:1]+s[0:1], 16, 8)
		g, _ = strconv.ParseUint(s[1:2]+s[1:2], 16, 8)
		b, _ = strconv.ParseUint(s[2:3]+s[2:3], 16, 8)
	case 6:
		r, _ = strconv.ParseUint(s[0:2], 16, 8)
		g, _ = strconv.ParseUint(s[2:4], 16, 8)
		b, _ = strconv.ParseUint(s[4:6], 16, 8)
	}
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

func (c Color) Add(d Color) Color {
	return Color{c.R + d.R, c.G + d.G, c.B + d.B, c.A + d.A}
}

func (c Color) Mul(d Color) Color {
	return Color{c.R * d.R, c.G * d.G, c.B * d.B, c.A * d.A}
}

func (c Color) MulScalar(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

func (c Color) Lerp(d Color, t float32) Color {
	return c.Add(d.Add(c.MulScalar(-1)).MulScalar(t))
}

func (c Color) Min(d Color) Color {
	return Color{
		math32.Min(c.R, d.R), math32.Min(c.G, d.G),
		math32.Min(c.B, d.B), math32.Min(c.A, d.A)}
}

// Alpha returns c with the alpha channel replaced.
func (c Color) Alpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Opaque returns c with alpha forced to exactly 1.
func (c Color) Opaque() Color {
	return Color{c.R, c.G, c.B, 1}
}

func clampChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// NRGBA converts to 8-bit non-premultiplied RGBA, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		clampChannel(c.R), clampChannel(c.G),
		clampChannel(c.B), clampChannel(c.A)}
}

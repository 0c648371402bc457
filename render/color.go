package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack  = RGB{0, 0, 0}
	RGBYellow = RGB{255, 255, 0}
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// RGBA converts to an opaque image/color value
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// fromColorful clamps a go-colorful color into 8-bit channels
func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

package glyph

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/textfall/parameter"
)

var ErrFontLoad = errors.New("glyph: cannot load font")

// Rasterizer turns a text string into an occupancy grid
type Rasterizer interface {
	Rasterize(text string) (Grid, error)
}

// FaceRasterizer draws text with a font face and thresholds the coverage
type FaceRasterizer struct {
	Face font.Face
	// Threshold is the minimum alpha (0-255) of a filled cell; zero uses the default
	Threshold uint8
}

// LoadFace opens an OpenType/TrueType font at size points
// An empty path selects the built-in 7x13 bitmap face, which ignores size
func LoadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	if size <= 0 {
		size = parameter.GlyphDefaultSize
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     parameter.GlyphDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, path, err)
	}
	return face, nil
}

// Rasterize draws each line of text below the previous one and returns the untrimmed raster
func (r FaceRasterizer) Rasterize(text string) (Grid, error) {
	if r.Face == nil {
		return Grid{}, errors.New("glyph: rasterizer has no face")
	}
	threshold := r.Threshold
	if threshold == 0 {
		threshold = parameter.GlyphCoverageThreshold
	}

	lines := strings.Split(text, "\n")
	metrics := r.Face.Metrics()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = (metrics.Ascent + metrics.Descent).Ceil()
	}

	// Per-line ink bounds relative to each line's dot
	type lineBox struct {
		minX, minY, maxX, maxY int
	}
	boxes := make([]lineBox, len(lines))
	width, top, bottom := 0, 0, 0
	for i, l := range lines {
		b, _ := font.BoundString(r.Face, l)
		box := lineBox{b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()}
		boxes[i] = box
		width = max(width, box.maxX-box.minX)
		top = min(top, i*lineHeight+box.minY)
		bottom = max(bottom, i*lineHeight+box.maxY)
	}
	height := bottom - top
	if width <= 0 || height <= 0 {
		return NewGrid(0, 0), nil
	}

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: r.Face}
	for i, l := range lines {
		d.Dot = fixed.P(-boxes[i].minX, i*lineHeight-top)
		d.DrawString(l)
	}

	g := NewGrid(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if img.AlphaAt(x, y).A >= threshold {
				g.Set(y, x, true)
			}
		}
	}
	return g, nil
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/lixenwraith/textfall/engine"
	"github.com/lixenwraith/textfall/parameter"
)

// GIFRenderer draws every Subsample-th stitched frame into an animated GIF
type GIFRenderer struct {
	Colormap   *Colormap
	Background RGB
	Wall       RGB
	// WallWidth is the stroke width in pixels
	WallWidth float64
}

// NewGIFRenderer returns a renderer with the default look: yellow field, black walls, gnuplot2 bodies
func NewGIFRenderer() *GIFRenderer {
	return &GIFRenderer{
		Colormap:   Gnuplot2(),
		Background: RGBYellow,
		Wall:       RGBBlack,
		WallWidth:  parameter.RenderWallWidth,
	}
}

// palette holds background, wall and an evenly sampled colormap
func (g *GIFRenderer) palette() color.Palette {
	pal := make(color.Palette, 0, 2+parameter.RenderPaletteLevels)
	pal = append(pal, g.Background.RGBA(), g.Wall.RGBA())
	for _, c := range g.Colormap.Samples(parameter.RenderPaletteLevels) {
		pal = append(pal, c.RGBA())
	}
	return pal
}

// Frame rasterizes trajectory frame idx at full color depth
func (g *GIFRenderer) Frame(s *Scene, idx int) (*image.RGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= s.Trajectory.Len() {
		return nil, fmt.Errorf("%w: frame %d of %d", ErrInvalidScene, idx, s.Trajectory.Len())
	}
	c := newCanvas(s)
	g.draw(c, s, s.Trajectory.Frames[idx])
	return c.img, nil
}

func (g *GIFRenderer) draw(c *canvas, s *Scene, frame engine.Snapshot) {
	c.clear(g.Background)
	for _, w := range s.Walls {
		c.strokeSegment(w.A, w.B, g.WallWidth, g.Wall)
	}
	for _, smp := range frame {
		c.fillCircle(smp.Pos, s.Radii[smp.ID], g.Colormap.At(s.Colors[smp.ID]))
	}
}

// Render encodes the scene as a looping GIF
func (g *GIFRenderer) Render(w io.Writer, s *Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	pal := g.palette()
	delay := max(1, int(math.Round(s.FrameDelay()*100)))
	c := newCanvas(s)
	bounds := c.img.Bounds()

	anim := &gif.GIF{}
	emit := func(frame engine.Snapshot) {
		g.draw(c, s, frame)
		p := image.NewPaletted(bounds, pal)
		draw.Draw(p, bounds, c.img, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}

	for _, idx := range FrameIndices(s.Trajectory.Len(), s.Subsample) {
		emit(s.Trajectory.Frames[idx])
	}
	// An empty trajectory still yields the bare arena
	if len(anim.Image) == 0 {
		emit(nil)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("render: encode gif: %w", err)
	}
	return nil
}

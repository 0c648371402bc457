package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
)

// circleKappa places cubic control points for a quarter-circle arc
const circleKappa = 0.5522847498307936

// canvas maps world coordinates (y up) onto an RGBA image (y down)
type canvas struct {
	img    *image.RGBA
	ras    *vector.Rasterizer
	scale  float64
	height float64
}

func newCanvas(s *Scene) *canvas {
	w, h := s.PixelSize()
	return &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:    vector.NewRasterizer(w, h),
		scale:  s.Resolution,
		height: s.Height,
	}
}

func (c *canvas) toPixel(p r2.Vec) (float64, float64) {
	return p.X * c.scale, (c.height - p.Y) * c.scale
}

func (c *canvas) clear(bg RGB) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)
}

func (c *canvas) fill(col RGB) {
	b := c.img.Bounds()
	c.ras.Draw(c.img, b, image.NewUniform(col.RGBA()), image.Point{})
	c.ras.Reset(b.Dx(), b.Dy())
}

// fillCircle draws a disc of world radius r as four cubic arcs
func (c *canvas) fillCircle(center r2.Vec, r float64, col RGB) {
	cx, cy := c.toPixel(center)
	pr := max(r*c.scale, parameter.RenderMinRadius)
	b := c.img.Bounds()
	if cx+pr < 0 || cy+pr < 0 || cx-pr > float64(b.Dx()) || cy-pr > float64(b.Dy()) {
		return
	}
	k := pr * circleKappa
	f := func(v float64) float32 { return float32(v) }

	c.ras.MoveTo(f(cx+pr), f(cy))
	c.ras.CubeTo(f(cx+pr), f(cy+k), f(cx+k), f(cy+pr), f(cx), f(cy+pr))
	c.ras.CubeTo(f(cx-k), f(cy+pr), f(cx-pr), f(cy+k), f(cx-pr), f(cy))
	c.ras.CubeTo(f(cx-pr), f(cy-k), f(cx-k), f(cy-pr), f(cx), f(cy-pr))
	c.ras.CubeTo(f(cx+k), f(cy-pr), f(cx+pr), f(cy-k), f(cx+pr), f(cy))
	c.ras.ClosePath()
	c.fill(col)
}

// strokeSegment draws a segment width pixels thick with square caps
func (c *canvas) strokeSegment(a, b r2.Vec, width float64, col RGB) {
	ax, ay := c.toPixel(a)
	bx, by := c.toPixel(b)
	bounds := c.img.Bounds()
	m := width
	ax, ay, bx, by, ok := clipSegment(ax, ay, bx, by, -m, -m, float64(bounds.Dx())+m, float64(bounds.Dy())+m)
	if !ok {
		return
	}
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	hw := width / 2
	ux, uy := dx/l*hw, dy/l*hw
	nx, ny := -uy, ux
	ax, ay = ax-ux, ay-uy
	bx, by = bx+ux, by+uy

	f := func(v float64) float32 { return float32(v) }
	c.ras.MoveTo(f(ax+nx), f(ay+ny))
	c.ras.LineTo(f(bx+nx), f(by+ny))
	c.ras.LineTo(f(bx-nx), f(by-ny))
	c.ras.LineTo(f(ax-nx), f(ay-ny))
	c.ras.ClosePath()
	c.fill(col)
}

// clipSegment trims a segment to a rectangle (Liang-Barsky)
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

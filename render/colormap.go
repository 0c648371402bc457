package render

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorStop pins a hex color at a position in [0, 1]
type ColorStop struct {
	Hex string
	Pos float64
}

type stop struct {
	col colorful.Color
	pos float64
}

// Colormap maps a scalar in [0, 1] onto a gradient blended in HCL space
type Colormap struct {
	stops []stop
}

// NewColormap parses stops; at least two are required and positions must span [0, 1]
func NewColormap(stops ...ColorStop) (*Colormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("colormap: need at least 2 stops, got %d", len(stops))
	}
	cm := &Colormap{stops: make([]stop, 0, len(stops))}
	for _, s := range stops {
		c, err := colorful.Hex(s.Hex)
		if err != nil {
			return nil, fmt.Errorf("colormap: stop %q: %w", s.Hex, err)
		}
		cm.stops = append(cm.stops, stop{col: c, pos: s.Pos})
	}
	sort.SliceStable(cm.stops, func(i, j int) bool { return cm.stops[i].pos < cm.stops[j].pos })
	if cm.stops[0].pos != 0 || cm.stops[len(cm.stops)-1].pos != 1 {
		return nil, fmt.Errorf("colormap: stops must start at 0 and end at 1")
	}
	return cm, nil
}

// gnuplot2Stops samples the gnuplot2 gradient at its breakpoints
var gnuplot2Stops = []ColorStop{
	{"#000000", 0.0},
	{"#0000ff", 0.25},
	{"#8700ff", 0.42},
	{"#c729d6", 0.5},
	{"#ffa857", 0.75},
	{"#ffff00", 0.92},
	{"#ffffff", 1.0},
}

// Gnuplot2 returns the black-blue-purple-yellow-white map used for body colors
func Gnuplot2() *Colormap {
	cm, err := NewColormap(gnuplot2Stops...)
	if err != nil {
		panic(err)
	}
	return cm
}

// ColormapByName resolves a named map; only "gnuplot2" is built in
func ColormapByName(name string) (*Colormap, error) {
	switch name {
	case "gnuplot2", "":
		return Gnuplot2(), nil
	}
	return nil, fmt.Errorf("colormap: unknown map %q", name)
}

// At returns the color for t, clamped to [0, 1]
func (c *Colormap) At(t float64) RGB {
	if t <= c.stops[0].pos {
		return fromColorful(c.stops[0].col)
	}
	last := c.stops[len(c.stops)-1]
	if t >= last.pos {
		return fromColorful(last.col)
	}
	for i := 1; i < len(c.stops); i++ {
		hi := c.stops[i]
		if t == hi.pos {
			return fromColorful(hi.col)
		}
		if t < hi.pos {
			lo := c.stops[i-1]
			f := (t - lo.pos) / (hi.pos - lo.pos)
			return fromColorful(lo.col.BlendHcl(hi.col, f))
		}
	}
	return fromColorful(last.col)
}

// Samples returns n evenly spaced colors across the map
func (c *Colormap) Samples(n int) []RGB {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []RGB{c.At(0.5)}
	}
	out := make([]RGB, n)
	for i := range out {
		out[i] = c.At(float64(i) / float64(n-1))
	}
	return out
}

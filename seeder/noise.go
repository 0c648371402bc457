package seeder

import (
	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
)

// turbulence samples a smooth 2D vector field from two offset Perlin lookups
type turbulence struct {
	p     *perlin.Perlin
	scale float64
}

func newTurbulence(seed int64, cellSize float64) *turbulence {
	return &turbulence{
		p:     perlin.NewPerlin(parameter.SeedNoiseAlpha, parameter.SeedNoiseBeta, parameter.SeedNoiseOctaves, seed),
		scale: cellSize,
	}
}

// at returns the field at a raster-local position, sampled in cell units
func (t *turbulence) at(pos r2.Vec) r2.Vec {
	span := t.scale * parameter.SeedNoiseCells
	x, y := pos.X/span, pos.Y/span
	return r2.Vec{
		X: t.p.Noise2D(x, y),
		Y: t.p.Noise2D(x+parameter.SeedNoiseOffset, y),
	}
}

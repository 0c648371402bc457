package seeder

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/glyph"
	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/vmath"
)

// Options places and animates the seeded raster
type Options struct {
	Center    r2.Vec
	MaxWidth  float64
	MaxHeight float64
	// VRand is the magnitude of the isotropic random velocity
	VRand float64
	// VRot scales the tangential swirl velocity with distance from the raster center
	VRot float64
	// VNoise scales the Perlin turbulence term, zero disables it
	VNoise float64
}

// Seed is the initial state of one particle
type Seed struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
	// Color is the normalized height mapped into [SeedColorOffset, SeedColorOffset+SeedColorSpan]
	Color float64
}

// Generate emits one seed per filled cell of the trimmed grid, in row-major order
// Random angles are drawn from rng in the same order, so equal inputs give equal seeds
func Generate(grid glyph.Grid, opts Options, rng *rand.Rand) []Seed {
	grid = grid.Trim()
	rows, cols := grid.Rows(), grid.Cols()
	if rows == 0 || cols == 0 {
		return nil
	}

	scale := math.Min(opts.MaxHeight/float64(rows), opts.MaxWidth/float64(cols))
	radius := scale / 2 * parameter.SeedFillFraction
	width := float64(cols-1) * scale
	height := float64(rows-1) * scale
	mid := r2.Vec{X: width / 2, Y: height / 2}

	var noise *turbulence
	if opts.VNoise != 0 {
		noise = newTurbulence(rng.Int63(), scale)
	}

	seeds := make([]Seed, 0, grid.Count())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !grid.At(r, c) {
				continue
			}

			local := r2.Vec{X: float64(c) * scale, Y: float64(rows-1-r) * scale}
			offset := r2.Sub(local, mid)
			dist, angle := vmath.Polar(offset)

			alpha := rng.Float64() * 2 * math.Pi
			vel := r2.Add(vmath.FromAngle(alpha, opts.VRand),
				vmath.FromAngle(angle+math.Pi/2, opts.VRot*dist))
			if noise != nil {
				vel = r2.Add(vel, r2.Scale(opts.VNoise, noise.at(local)))
			}

			norm := 0.0
			if height > 0 {
				norm = local.Y / height
			}

			seeds = append(seeds, Seed{
				Pos:    r2.Add(offset, opts.Center),
				Vel:    vel,
				Radius: radius,
				Color:  norm*parameter.SeedColorSpan + parameter.SeedColorOffset,
			})
		}
	}
	return seeds
}

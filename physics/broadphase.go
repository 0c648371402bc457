package physics

import (
	"math"

	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/vmath"
)

type cellKey struct{ X, Y int }

// grid is a uniform spatial hash over active bodies
// Cells hold body indices in ID order so neighbour visits are deterministic
type grid struct {
	size  float64
	cells map[cellKey][]int
}

func (g *grid) key(b *Body) cellKey {
	return cellKey{int(math.Floor(b.Pos.X / g.size)), int(math.Floor(b.Pos.Y / g.size))}
}

// build rebuilds the grid; cell size covers the largest possible contact distance
func (g *grid) build(bodies []*Body) {
	maxRadius := 0.0
	for _, b := range bodies {
		if b.active && b.Radius > maxRadius {
			maxRadius = b.Radius
		}
	}
	g.size = 2 * maxRadius * parameter.BroadphaseCellFactor
	if g.size <= 0 {
		g.size = 1
	}

	if g.cells == nil {
		g.cells = make(map[cellKey][]int)
	}
	// Cells vacated since the last build are dropped so the map tracks occupancy, not history
	clear(g.cells)

	for i, b := range bodies {
		// Diverged bodies are culled by the driver after the step
		if !b.active || !vmath.IsFinite(b.Pos) {
			continue
		}
		k := g.key(b)
		g.cells[k] = append(g.cells[k], i)
	}
}

// neighbours calls fn for every active body with a higher index in the 3x3 cell block around b
func (g *grid) neighbours(bodies []*Body, b *Body, fn func(o *Body)) {
	if !vmath.IsFinite(b.Pos) {
		return
	}
	k := g.key(b)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, j := range g.cells[cellKey{k.X + dx, k.Y + dy}] {
				if j <= b.ID {
					continue
				}
				if o := bodies[j]; o.active {
					fn(o)
				}
			}
		}
	}
}

package engine

import (
	"math"

	"github.com/lixenwraith/textfall/physics"
	"github.com/lixenwraith/textfall/vmath"
)

// invert returns 1/e; a fully inelastic 0 becomes +Inf
func invert(e float64) float64 {
	if e == 0 {
		return math.Inf(1)
	}
	return 1 / e
}

// Reverse turns a freshly built world into its time-mirrored initial condition:
// velocities are negated and every body and wall restitution e becomes 1/e
// Inverting restitution is exact only for e = 1; below that the backward run gains energy
// on each bounce, and any resulting divergence is caught by the driver's instability check.
// An inverted 0 is +Inf, so the first impulse such a body exchanges drives it non-finite
func Reverse(w *physics.World) {
	for _, b := range w.Bodies() {
		b.Vel = vmath.Negate(b.Vel)
		b.Restitution = invert(b.Restitution)
	}
	for i := range w.Walls {
		w.Walls[i].Restitution = invert(w.Walls[i].Restitution)
	}
}

// SimulateBackward reverses the world and runs it for the same duration and timestep
func SimulateBackward(w *physics.World, duration, dt, heightBound float64) (*Run, error) {
	Reverse(w)
	return Simulate(w, duration, dt, heightBound)
}

package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Integrate advances active bodies with semi-implicit Euler: v += g*dt; p += v*dt
// Damping is applied last as Damping^dt so it scales with the timestep
func (w *World) Integrate(dt float64) {
	gdt := r2.Scale(dt, w.Gravity)
	damp := 1.0
	if w.Damping != 1 {
		damp = math.Pow(w.Damping, dt)
	}

	for _, b := range w.bodies {
		if !b.active {
			continue
		}
		b.Vel = r2.Add(b.Vel, gdt)
		b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
		b.Vel = r2.Scale(damp, b.Vel)
	}
}

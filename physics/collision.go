package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/vmath"
)

// CombineRestitution merges two coefficients multiplicatively
// The product of inverses is the inverse of the product, so reversed runs stay consistent
func CombineRestitution(a, b float64) float64 {
	return a * b
}

// CollideBodies separates two overlapping circles and exchanges a normal impulse when approaching
// Returns the normal approach speed (0 if separating) and whether the circles touched
func CollideBodies(a, b *Body) (speed float64, touched bool) {
	delta := r2.Sub(b.Pos, a.Pos)
	minDist := a.Radius + b.Radius
	distSq := r2.Norm2(delta)
	if distSq >= minDist*minDist {
		return 0, false
	}

	// Coincident centers: pick a fixed axis so the outcome stays deterministic
	n := r2.Vec{X: 1, Y: 0}
	dist := 0.0
	if distSq > 0 {
		dist = math.Sqrt(distSq)
		n = r2.Scale(1/dist, delta)
	}

	// Positional correction in inverse-mass proportion
	invA, invB := a.InvMass(), b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return 0, true
	}
	sep := minDist - dist + parameter.SeparationSlop
	a.Pos = r2.Sub(a.Pos, r2.Scale(sep*invA/invSum, n))
	b.Pos = r2.Add(b.Pos, r2.Scale(sep*invB/invSum, n))

	vn := r2.Dot(r2.Sub(a.Vel, b.Vel), n)
	if vn <= 0 {
		return 0, true
	}

	e := CombineRestitution(a.Restitution, b.Restitution)
	j := (1 + e) * vn / invSum

	a.Vel = r2.Sub(a.Vel, r2.Scale(j*invA, n))
	b.Vel = r2.Add(b.Vel, r2.Scale(j*invB, n))
	return vn, true
}

// CollideWall pushes a circle out of a static segment and reflects its normal velocity
// Tangential velocity is reduced by Coulomb friction bounded by the normal impulse
func CollideWall(b *Body, w *Wall) (speed float64, touched bool) {
	closest := vmath.ClosestPointOnSegment(b.Pos, w.A, w.B)
	delta := r2.Sub(b.Pos, closest)
	minDist := b.Radius + w.Radius
	distSq := r2.Norm2(delta)
	if distSq >= minDist*minDist {
		return 0, false
	}

	var n r2.Vec
	dist := 0.0
	if distSq > 0 {
		dist = math.Sqrt(distSq)
		n = r2.Scale(1/dist, delta)
	} else {
		n = vmath.SegmentNormal(w.A, w.B)
	}

	b.Pos = r2.Add(b.Pos, r2.Scale(minDist-dist+parameter.SeparationSlop, n))

	vn := r2.Dot(b.Vel, n)
	if vn >= 0 {
		return 0, true
	}

	e := CombineRestitution(b.Restitution, w.Restitution)
	jn := -(1 + e) * vn
	b.Vel = r2.Add(b.Vel, r2.Scale(jn, n))

	if w.Friction > 0 {
		t := vmath.Perpendicular(n)
		vt := r2.Dot(b.Vel, t)
		limit := w.Friction * jn
		dv := math.Max(-limit, math.Min(limit, -vt))
		b.Vel = r2.Add(b.Vel, r2.Scale(dv, t))
	}
	return -vn, true
}

package vmath

import "gonum.org/v1/gonum/spatial/r2"

// ClosestPointOnSegment returns the point of segment [a,b] nearest to p
// Degenerate segments (a == b) collapse to a
func ClosestPointOnSegment(p, a, b r2.Vec) r2.Vec {
	ab := r2.Sub(b, a)
	lenSq := r2.Norm2(ab)
	if lenSq == 0 {
		return a
	}
	t := r2.Dot(r2.Sub(p, a), ab) / lenSq
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return r2.Add(a, r2.Scale(t, ab))
}

// SegmentNormal returns the unit left-hand normal of a→b, zero for degenerate segments
func SegmentNormal(a, b r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	if r2.Norm2(d) == 0 {
		return r2.Vec{}
	}
	return r2.Unit(Perpendicular(d))
}

package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FromAngle returns the vector of length mag pointing at angle (radians)
func FromAngle(angle, mag float64) r2.Vec {
	return r2.Vec{X: mag * math.Cos(angle), Y: mag * math.Sin(angle)}
}

// Perpendicular returns v rotated 90° counter-clockwise
func Perpendicular(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Polar returns distance and angle of v from the origin
func Polar(v r2.Vec) (dist, angle float64) {
	return r2.Norm(v), math.Atan2(v.Y, v.X)
}

// IsFinite reports whether both components are neither NaN nor infinite
func IsFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Exceeds reports whether |v| > limit, without a square root
func Exceeds(v r2.Vec, limit float64) bool {
	return r2.Norm2(v) > limit*limit
}

// Negate returns -v
func Negate(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.X, Y: -v.Y}
}

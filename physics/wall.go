package physics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
)

var ErrDegenerateWall = errors.New("physics: wall segment has zero length")

// Wall is a static line segment with thickness Radius
type Wall struct {
	A, B        r2.Vec
	Restitution float64
	Friction    float64
	Radius      float64
}

// NewWall validates and builds a wall segment
func NewWall(a, b r2.Vec, restitution, friction float64) (Wall, error) {
	w := Wall{
		A:           a,
		B:           b,
		Restitution: restitution,
		Friction:    friction,
		Radius:      parameter.WallRadius,
	}
	if !(w.Length() > 0) || math.IsInf(w.Length(), 0) {
		return Wall{}, ErrDegenerateWall
	}
	if !validRestitution(restitution) {
		return Wall{}, ErrInvalidRestitution
	}
	return w, nil
}

// Length returns the segment length
func (w *Wall) Length() float64 {
	return r2.Norm(r2.Sub(w.B, w.A))
}

package physics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
)

var (
	ErrInvalidRadius      = errors.New("physics: radius must be positive and finite")
	ErrInvalidRestitution = errors.New("physics: restitution must be non-negative and finite")
	ErrInvalidState       = errors.New("physics: position and velocity must be finite")
)

// Body is a dynamic circle with no angular state
// Bodies live in the World arena for the whole run; removal only clears the active flag
type Body struct {
	ID          int
	Pos         r2.Vec
	Vel         r2.Vec
	Radius      float64
	Mass        float64
	Restitution float64

	active bool
}

// BodyMass returns the mass of a circle of the given radius at unit density
func BodyMass(radius float64) float64 {
	return parameter.BodyDensity * math.Pi * radius * radius
}

// Active reports whether the body is still simulated
func (b *Body) Active() bool { return b.active }

// InvMass returns 1/mass, zero for massless bodies
func (b *Body) InvMass() float64 {
	if b.Mass == 0 {
		return 0
	}
	return 1 / b.Mass
}

// KineticEnergy returns ½mv²
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Vel)
}

func validRestitution(e float64) bool {
	return e >= 0 && !math.IsInf(e, 0) && !math.IsNaN(e)
}

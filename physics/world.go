package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/vmath"
)

// Impact is a contact that exchanged a normal impulse
// Other is the other body ID, or WallContact for static walls
type Impact struct {
	Body  int
	Other int
	Speed float64 // normal approach speed before the impulse
}

// WallContact marks an Impact against a static wall
const WallContact = -1

// World holds global constants, static walls and the body arena
type World struct {
	Gravity r2.Vec
	// Damping is the fraction of velocity kept per unit time
	Damping float64
	Walls   []Wall

	Iterations    int
	SpeedLimit    float64
	PositionLimit float64

	// OnImpact, when set, receives every impulse-exchanging contact during Resolve
	OnImpact func(Impact)

	bodies []*Body
	grid   grid
}

// CreateWorld builds an open-top arena: floor, right wall and left wall inset by WallGap
// Side walls extend to height*WallHeightFactor so bodies only escape over the top
func CreateWorld(width, height, elasticity float64) (*World, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("create world %gx%g: %w", width, height, ErrDegenerateWall)
	}

	gap := parameter.WallGap
	top := height * parameter.WallHeightFactor
	if width <= 2*gap || top <= gap {
		return nil, fmt.Errorf("create world %gx%g: arena smaller than wall gap: %w", width, height, ErrDegenerateWall)
	}
	segments := [][2]r2.Vec{
		{{X: gap, Y: gap}, {X: width - gap, Y: gap}},        // floor
		{{X: width - gap, Y: gap}, {X: width - gap, Y: top}}, // right
		{{X: gap, Y: gap}, {X: gap, Y: top}},                 // left
	}

	w := &World{
		Gravity:       r2.Vec{X: 0, Y: parameter.GravityY},
		Damping:       parameter.Damping,
		Iterations:    parameter.SolverIterations,
		SpeedLimit:    parameter.SpeedLimit,
		PositionLimit: parameter.PositionLimit,
	}
	for i, s := range segments {
		wall, err := NewWall(s[0], s[1], elasticity, 0)
		if err != nil {
			return nil, fmt.Errorf("create world wall %d: %w", i, err)
		}
		w.Walls = append(w.Walls, wall)
	}
	return w, nil
}

// CreateBody adds a circle to the arena; IDs follow insertion order
func (w *World) CreateBody(x, y, vx, vy, radius, elasticity float64) (*Body, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("create body %d: %w", len(w.bodies), ErrInvalidRadius)
	}
	if !validRestitution(elasticity) {
		return nil, fmt.Errorf("create body %d: %w", len(w.bodies), ErrInvalidRestitution)
	}
	pos, vel := r2.Vec{X: x, Y: y}, r2.Vec{X: vx, Y: vy}
	if !vmath.IsFinite(pos) || !vmath.IsFinite(vel) {
		return nil, fmt.Errorf("create body %d: %w", len(w.bodies), ErrInvalidState)
	}

	b := &Body{
		ID:          len(w.bodies),
		Pos:         pos,
		Vel:         vel,
		Radius:      radius,
		Mass:        BodyMass(radius),
		Restitution: elasticity,
		active:      true,
	}
	w.bodies = append(w.bodies, b)
	return b, nil
}

// Bodies returns the whole arena in ID order, including inactive bodies
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Remove deactivates a body; it stays in the arena so IDs remain stable
func (w *World) Remove(b *Body) {
	b.active = false
}

// ActiveCount returns the number of bodies still simulated
func (w *World) ActiveCount() int {
	n := 0
	for _, b := range w.bodies {
		if b.active {
			n++
		}
	}
	return n
}

// KineticEnergy sums ½mv² over active bodies
func (w *World) KineticEnergy() float64 {
	var e float64
	for _, b := range w.bodies {
		if b.active {
			e += b.KineticEnergy()
		}
	}
	return e
}

// Diverged reports whether a body's state is non-finite or beyond the world limits
func (w *World) Diverged(b *Body) bool {
	if !vmath.IsFinite(b.Pos) || !vmath.IsFinite(b.Vel) {
		return true
	}
	if w.SpeedLimit > 0 && vmath.Exceeds(b.Vel, w.SpeedLimit) {
		return true
	}
	return w.PositionLimit > 0 && vmath.Exceeds(b.Pos, w.PositionLimit)
}

// Step advances all active bodies by dt: integration followed by collision resolution
func (w *World) Step(dt float64) {
	w.Integrate(dt)
	w.Resolve()
}

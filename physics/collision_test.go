package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/parameter"
)

func newTestBody(id int, pos, vel r2.Vec, radius, e float64) *Body {
	return &Body{ID: id, Pos: pos, Vel: vel, Radius: radius, Mass: BodyMass(radius), Restitution: e, active: true}
}

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestCollideBodiesEqualMassElastic(t *testing.T) {
	a := newTestBody(0, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 0}, 0.5, 1)
	b := newTestBody(1, r2.Vec{X: 0.9, Y: 0}, r2.Vec{X: -1, Y: 0}, 0.5, 1)

	speed, touched := CollideBodies(a, b)
	if !touched {
		t.Fatal("Expected overlapping bodies to touch")
	}
	if !approx(speed, 2, 1e-12) {
		t.Errorf("Expected approach speed 2, got %f", speed)
	}
	if !approx(a.Vel.X, -1, 1e-12) || !approx(b.Vel.X, 1, 1e-12) {
		t.Errorf("Expected velocities to swap, got %v and %v", a.Vel, b.Vel)
	}
	if d := r2.Norm(r2.Sub(b.Pos, a.Pos)); d < 1-1e-12 {
		t.Errorf("Expected bodies separated to radius sum, got distance %f", d)
	}
	// Equal masses share the correction
	if !approx(-a.Pos.X, b.Pos.X-0.9, 1e-12) {
		t.Errorf("Expected symmetric correction, got a=%f b=%f", a.Pos.X, b.Pos.X)
	}
}

func TestCollideBodiesConservesMomentum(t *testing.T) {
	a := newTestBody(0, r2.Vec{X: 0, Y: 0}, r2.Vec{X: 2, Y: 0.5}, 1, 0.7)
	b := newTestBody(1, r2.Vec{X: 1.2, Y: 0.6}, r2.Vec{X: -1, Y: 0}, 0.5, 1)

	n := r2.Unit(r2.Sub(b.Pos, a.Pos))
	before := r2.Add(r2.Scale(a.Mass, a.Vel), r2.Scale(b.Mass, b.Vel))
	vnBefore := r2.Dot(r2.Sub(a.Vel, b.Vel), n)

	if _, touched := CollideBodies(a, b); !touched {
		t.Fatal("Expected contact")
	}

	after := r2.Add(r2.Scale(a.Mass, a.Vel), r2.Scale(b.Mass, b.Vel))
	if r2.Norm(r2.Sub(after, before)) > 1e-9 {
		t.Errorf("Momentum changed: before %v after %v", before, after)
	}
	vnAfter := r2.Dot(r2.Sub(a.Vel, b.Vel), n)
	if !approx(vnAfter, -0.7*vnBefore, 1e-9) {
		t.Errorf("Expected normal relative velocity %f, got %f", -0.7*vnBefore, vnAfter)
	}
}

func TestCollideBodiesSeparatingAndApart(t *testing.T) {
	a := newTestBody(0, r2.Vec{X: 0, Y: 0}, r2.Vec{X: -1, Y: 0}, 0.5, 1)
	b := newTestBody(1, r2.Vec{X: 0.9, Y: 0}, r2.Vec{X: 1, Y: 0}, 0.5, 1)

	speed, touched := CollideBodies(a, b)
	if !touched || speed != 0 {
		t.Errorf("Expected separating contact without impulse, got speed=%f touched=%v", speed, touched)
	}
	if a.Vel.X != -1 || b.Vel.X != 1 {
		t.Error("Expected separating velocities to be untouched")
	}

	far := newTestBody(2, r2.Vec{X: 5, Y: 5}, r2.Vec{}, 0.5, 1)
	if _, touched := CollideBodies(a, far); touched {
		t.Error("Expected distant bodies not to touch")
	}
}

func TestCollideBodiesCoincident(t *testing.T) {
	a := newTestBody(0, r2.Vec{X: 1, Y: 1}, r2.Vec{}, 0.5, 1)
	b := newTestBody(1, r2.Vec{X: 1, Y: 1}, r2.Vec{}, 0.5, 1)

	CollideBodies(a, b)
	if a.Pos.X >= b.Pos.X || a.Pos.Y != b.Pos.Y {
		t.Errorf("Expected coincident bodies split along x, got %v and %v", a.Pos, b.Pos)
	}
}

func TestCollideWallBounce(t *testing.T) {
	floor, _ := NewWall(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}, 1, 0)
	b := newTestBody(0, r2.Vec{X: 5, Y: 0.05}, r2.Vec{X: 0, Y: -2}, 0.1, 0.5)

	speed, touched := CollideWall(b, &floor)
	if !touched || !approx(speed, 2, 1e-12) {
		t.Fatalf("Expected impact at speed 2, got %f touched=%v", speed, touched)
	}
	if !approx(b.Vel.Y, 1, 1e-12) {
		t.Errorf("Expected rebound velocity 1 for restitution 0.5, got %f", b.Vel.Y)
	}
	wantY := 0.1 + parameter.WallRadius
	if b.Pos.Y < wantY-1e-12 {
		t.Errorf("Expected body pushed to y >= %f, got %f", wantY, b.Pos.Y)
	}
}

func TestCollideWallFriction(t *testing.T) {
	floor, _ := NewWall(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}, 1, 0.5)
	b := newTestBody(0, r2.Vec{X: 5, Y: 0.1}, r2.Vec{X: 3, Y: -2}, 0.1, 1)

	CollideWall(b, &floor)

	// Normal impulse 4 per unit mass bounds the tangential change to 2
	if !approx(b.Vel.X, 1, 1e-12) || !approx(b.Vel.Y, 2, 1e-12) {
		t.Errorf("Expected velocity (1,2), got %v", b.Vel)
	}
}

func TestCollideWallEndpoint(t *testing.T) {
	wall, _ := NewWall(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 0, Y: 10}, 1, 0)
	// Approaching the bottom endpoint diagonally from below-right
	b := newTestBody(0, r2.Vec{X: 0.05, Y: -0.05}, r2.Vec{X: -1, Y: 1}, 0.1, 1)

	if _, touched := CollideWall(b, &wall); !touched {
		t.Fatal("Expected endpoint contact")
	}
	if b.Vel.X <= 0 || b.Vel.Y >= 0 {
		t.Errorf("Expected reflection away from the endpoint, got %v", b.Vel)
	}
}

func TestCombineRestitutionInverts(t *testing.T) {
	e := CombineRestitution(0.99, 0.9)
	inv := CombineRestitution(1/0.99, 1/0.9)
	if !approx(e*inv, 1, 1e-12) {
		t.Errorf("Expected inverted coefficients to combine to the inverse, got %f * %f", e, inv)
	}
}

func TestResolveReportsImpacts(t *testing.T) {
	w, _ := CreateWorld(1, 1, 1)
	b, _ := w.CreateBody(0.5, 0.12, 0, -3, 0.05, 1)

	var impacts []Impact
	w.OnImpact = func(i Impact) { impacts = append(impacts, i) }
	w.Resolve()

	if len(impacts) != 1 {
		t.Fatalf("Expected one impact, got %d", len(impacts))
	}
	if impacts[0].Body != b.ID || impacts[0].Other != WallContact || !approx(impacts[0].Speed, 3, 1e-12) {
		t.Errorf("Unexpected impact %+v", impacts[0])
	}
}

func TestResolveStack(t *testing.T) {
	w, _ := CreateWorld(1, 2, 0)
	w.Gravity = r2.Vec{}
	// Three bodies overlapping in a column on the floor
	for i := range 3 {
		w.CreateBody(0.5, 0.16+float64(i)*0.08, 0, 0, 0.05, 0)
	}

	for range 20 {
		w.Resolve()
	}

	bodies := w.Bodies()
	for i := 1; i < len(bodies); i++ {
		d := r2.Norm(r2.Sub(bodies[i].Pos, bodies[i-1].Pos))
		if d < 0.1-1e-3 {
			t.Errorf("Bodies %d and %d still interpenetrate: distance %f", i-1, i, d)
		}
	}
	if bodies[0].Pos.Y < 0.16-1e-3 {
		t.Errorf("Bottom body sank into the floor: y=%f", bodies[0].Pos.Y)
	}
}

package physics

import "testing"

func TestGridForgetsVacatedCells(t *testing.T) {
	w, _ := CreateWorld(1, 1, 1)
	w.CreateBody(0.1, 0.9, 0.7, 0, 0.01, 1)

	for range 1200 {
		w.Step(1.0 / 60)
	}

	// One body occupies exactly one cell no matter how far it travelled
	if n := len(w.grid.cells); n != 1 {
		t.Errorf("Expected grid to hold only the occupied cell, got %d cells", n)
	}
}

func TestGridNeighboursHigherIDsOnly(t *testing.T) {
	w, _ := CreateWorld(10, 10, 1)
	a, _ := w.CreateBody(5, 5, 0, 0, 0.1, 1)
	w.CreateBody(5.15, 5, 0, 0, 0.1, 1)
	w.CreateBody(8, 8, 0, 0, 0.1, 1)
	w.grid.build(w.bodies)

	var seen []int
	w.grid.neighbours(w.bodies, a, func(o *Body) { seen = append(seen, o.ID) })
	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("Expected only body 1 as neighbour of body 0, got %v", seen)
	}

	w.grid.neighbours(w.bodies, w.bodies[1], func(o *Body) {
		t.Errorf("Expected no higher-ID neighbour of body 1, got %d", o.ID)
	})
}

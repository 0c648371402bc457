package physics

// Resolve runs Iterations Gauss-Seidel passes over wall and body contacts
// Each pass visits bodies in ID order, walls first, then higher-ID neighbours
func (w *World) Resolve() {
	iterations := w.Iterations
	if iterations < 1 {
		iterations = 1
	}

	for range iterations {
		w.grid.build(w.bodies)

		for _, b := range w.bodies {
			if !b.active {
				continue
			}
			for k := range w.Walls {
				if speed, _ := CollideWall(b, &w.Walls[k]); speed > 0 {
					w.emit(Impact{Body: b.ID, Other: WallContact, Speed: speed})
				}
			}
			w.grid.neighbours(w.bodies, b, func(o *Body) {
				if speed, _ := CollideBodies(b, o); speed > 0 {
					w.emit(Impact{Body: b.ID, Other: o.ID, Speed: speed})
				}
			})
		}
	}
}

func (w *World) emit(i Impact) {
	if w.OnImpact != nil {
		w.OnImpact(i)
	}
}

package engine

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/physics"
)

var ErrInvalidStep = errors.New("engine: duration and timestep must be positive and finite")

// RemovalReason tells why a body left the active set
type RemovalReason uint8

const (
	// RemovedEscaped bodies rose above the height bound
	RemovedEscaped RemovalReason = iota
	// RemovedUnstable bodies diverged (non-finite or beyond world limits)
	RemovedUnstable
)

func (r RemovalReason) String() string {
	switch r {
	case RemovedEscaped:
		return "escaped"
	case RemovedUnstable:
		return "unstable"
	}
	return fmt.Sprintf("RemovalReason(%d)", uint8(r))
}

// Removal records when and why a body was deactivated
type Removal struct {
	ID     int
	Time   float64
	Reason RemovalReason
}

// Impact is a timestamped contact above parameter.ImpactMinSpeed
type Impact struct {
	Time float64
	physics.Impact
}

// Run is the output of one Simulate call
type Run struct {
	Trajectory
	// Energy is the total kinetic energy at each recorded frame
	Energy   []float64
	Impacts  []Impact
	Removals []Removal
	// Planned is the step count the duration allows; Len() is lower on early termination
	Planned int
}

// Unstable returns the IDs removed for divergence
func (r *Run) Unstable() []int {
	var ids []int
	for _, rm := range r.Removals {
		if rm.Reason == RemovedUnstable {
			ids = append(ids, rm.ID)
		}
	}
	return ids
}

// StepCount returns the number of steps for duration at dt, matching a half-open [0, duration) range
func StepCount(duration, dt float64) int {
	// The epsilon absorbs representation error in duration/dt (4/(1/300) is not exactly 1200)
	return int(math.Ceil(duration/dt - 1e-9))
}

// Simulate steps the world from t=0 while t < duration, recording active positions before each step
// Bodies above heightBound+radius are removed, diverged bodies are removed as unstable,
// and the run stops early once no body is active
func Simulate(w *physics.World, duration, dt, heightBound float64) (*Run, error) {
	if w == nil {
		return nil, errors.New("engine: nil world")
	}
	if !(dt > 0) || !(duration > 0) || math.IsInf(dt, 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("simulate duration=%g dt=%g: %w", duration, dt, ErrInvalidStep)
	}

	steps := StepCount(duration, dt)
	run := &Run{Planned: steps}
	run.Times = make([]float64, 0, steps)
	run.Frames = make([]Snapshot, 0, steps)
	run.Energy = make([]float64, 0, steps)

	var stepTime float64
	prevHook := w.OnImpact
	w.OnImpact = func(i physics.Impact) {
		if i.Speed >= parameter.ImpactMinSpeed {
			run.Impacts = append(run.Impacts, Impact{Time: stepTime, Impact: i})
		}
		if prevHook != nil {
			prevHook(i)
		}
	}
	defer func() { w.OnImpact = prevHook }()

	for k := range steps {
		t := float64(k) * dt
		run.Append(t, capture(w))
		run.Energy = append(run.Energy, w.KineticEnergy())

		stepTime = t + dt
		w.Step(dt)

		for _, b := range w.Bodies() {
			if !b.Active() {
				continue
			}
			switch {
			case w.Diverged(b):
				w.Remove(b)
				run.Removals = append(run.Removals, Removal{ID: b.ID, Time: stepTime, Reason: RemovedUnstable})
			case b.Pos.Y > heightBound+b.Radius:
				w.Remove(b)
				run.Removals = append(run.Removals, Removal{ID: b.ID, Time: stepTime, Reason: RemovedEscaped})
			}
		}

		if w.ActiveCount() == 0 {
			break
		}
	}

	if unstable := run.Unstable(); len(unstable) > 0 {
		log.Printf("simulate: %d bodies diverged and were removed (first id %d)", len(unstable), unstable[0])
	}
	log.Printf("simulate: %d/%d steps, %d removed, %d impacts", run.Len(), steps, len(run.Removals), len(run.Impacts))
	return run, nil
}

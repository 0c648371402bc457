package engine

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/physics"
)

// Sample is one body's position in a snapshot
type Sample struct {
	ID  int
	Pos r2.Vec
}

// Snapshot holds every active body's position at one timestamp, sorted by ID
// Removed bodies have no entry
type Snapshot []Sample

// Lookup returns the position of body id, false if it was not active
func (s Snapshot) Lookup(id int) (r2.Vec, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].ID >= id })
	if i < len(s) && s[i].ID == id {
		return s[i].Pos, true
	}
	return r2.Vec{}, false
}

// IDs returns the body IDs present in the snapshot
func (s Snapshot) IDs() []int {
	ids := make([]int, len(s))
	for i, smp := range s {
		ids[i] = smp.ID
	}
	return ids
}

// capture records active bodies in arena order, which is ID order
func capture(w *physics.World) Snapshot {
	bodies := w.Bodies()
	snap := make(Snapshot, 0, len(bodies))
	for _, b := range bodies {
		if b.Active() {
			snap = append(snap, Sample{ID: b.ID, Pos: b.Pos})
		}
	}
	return snap
}

// Trajectory is the timestamped position history of one run
// Times[i] is the timestamp of Frames[i]
type Trajectory struct {
	Times  []float64
	Frames []Snapshot
}

// Len returns the number of recorded frames
func (t *Trajectory) Len() int { return len(t.Times) }

// Append adds a frame; callers keep timestamps increasing
func (t *Trajectory) Append(time float64, frame Snapshot) {
	t.Times = append(t.Times, time)
	t.Frames = append(t.Frames, frame)
}

// Span returns the first and last timestamps, zero for an empty trajectory
func (t *Trajectory) Span() (start, end float64) {
	if len(t.Times) == 0 {
		return 0, 0
	}
	return t.Times[0], t.Times[len(t.Times)-1]
}

// Validate checks the parallel slices and strictly increasing timestamps
func (t *Trajectory) Validate() error {
	if len(t.Times) != len(t.Frames) {
		return fmt.Errorf("trajectory: %d timestamps for %d frames", len(t.Times), len(t.Frames))
	}
	for i := 1; i < len(t.Times); i++ {
		if !(t.Times[i] > t.Times[i-1]) {
			return fmt.Errorf("trajectory: timestamp %d (%g) not after %g", i, t.Times[i], t.Times[i-1])
		}
	}
	for i, f := range t.Frames {
		for j := 1; j < len(f); j++ {
			if f[j].ID <= f[j-1].ID {
				return fmt.Errorf("trajectory: frame %d not sorted by body ID", i)
			}
		}
	}
	return nil
}

// ActiveCounts returns the number of bodies present in each frame
func (t *Trajectory) ActiveCounts() []int {
	counts := make([]int, len(t.Frames))
	for i, f := range t.Frames {
		counts[i] = len(f)
	}
	return counts
}

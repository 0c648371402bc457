package engine

import (
	"errors"
	"fmt"
	"slices"
)

var ErrSeedMismatch = errors.New("engine: forward and backward runs start from different bodies")

// Stitch joins a backward run and a forward run into one timeline centered on t=0
// The backward run is reversed with negated timestamps and its own t=0 frame dropped,
// so the shared initial configuration appears exactly once
func Stitch(forward, backward *Trajectory) (*Trajectory, error) {
	if forward.Len() == 0 || backward.Len() == 0 {
		return nil, errors.New("engine: stitch needs non-empty trajectories")
	}
	if forward.Times[0] != 0 || backward.Times[0] != 0 {
		return nil, fmt.Errorf("engine: stitch needs runs starting at t=0, got %g and %g", forward.Times[0], backward.Times[0])
	}
	if !slices.Equal(forward.Frames[0].IDs(), backward.Frames[0].IDs()) {
		return nil, ErrSeedMismatch
	}

	n := backward.Len() - 1 + forward.Len()
	out := &Trajectory{
		Times:  make([]float64, 0, n),
		Frames: make([]Snapshot, 0, n),
	}
	for i := backward.Len() - 1; i > 0; i-- {
		out.Append(-backward.Times[i], backward.Frames[i])
	}
	out.Times = append(out.Times, forward.Times...)
	out.Frames = append(out.Frames, forward.Frames...)
	return out, nil
}

// ZeroIndex returns the index of the t=0 frame, -1 if absent
func (t *Trajectory) ZeroIndex() int {
	for i, ts := range t.Times {
		if ts == 0 {
			return i
		}
	}
	return -1
}

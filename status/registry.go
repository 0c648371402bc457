package status

import "sync/atomic"

// Metric keys published by a scene run
// Per-direction keys are prefixed with "forward." or "backward."
const (
	MetricSeeds      = "seeds"
	MetricFrames     = "frames"
	MetricSteps      = "steps"
	MetricRemoved    = "removed"
	MetricUnstable   = "unstable"
	MetricImpacts    = "impacts"
	MetricPeakEnergy = "energy.peak"
	MetricDuration   = "duration"
	MetricAudioPeak  = "audio.peak"
)

type atomicInt = atomic.Int64

// Registry is the central metrics facade
// The pipeline caches pointers once per run; viewers read concurrently
type Registry struct {
	Ints   *MetricMap[atomicInt]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomicInt](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

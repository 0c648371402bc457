package scene

import (
	"fmt"
	"log"
	"math/rand"
	"slices"

	"github.com/lixenwraith/textfall/audio"
	"github.com/lixenwraith/textfall/engine"
	"github.com/lixenwraith/textfall/glyph"
	"github.com/lixenwraith/textfall/physics"
	"github.com/lixenwraith/textfall/render"
	"github.com/lixenwraith/textfall/seeder"
	"github.com/lixenwraith/textfall/status"
)

// Result is the output of one pipeline run
type Result struct {
	Config Config
	Seeds  []seeder.Seed
	// Walls are the forward world's walls, restitution as configured
	Walls    []physics.Wall
	Forward  *engine.Run
	Backward *engine.Run
	// Trajectory is the stitched timeline from -Duration to +Duration
	Trajectory *engine.Trajectory
	// Energy is kinetic energy per stitched frame
	Energy []float64
	// Impacts are on the stitched timeline, backward ones at negated times
	Impacts []engine.Impact
	// Empty is set when the raster produced no seeds
	Empty bool
}

// Build creates a world holding one body per seed, in seed order
func Build(cfg Config, seeds []seeder.Seed) (*physics.World, error) {
	w, err := physics.CreateWorld(cfg.Width, cfg.Height, cfg.Elasticity)
	if err != nil {
		return nil, err
	}
	w.Iterations = cfg.Iterations
	w.SpeedLimit = cfg.SpeedLimit
	for i, s := range seeds {
		if _, err := w.CreateBody(s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y, s.Radius, cfg.Elasticity); err != nil {
			return nil, fmt.Errorf("scene: seed %d: %w", i, err)
		}
	}
	return w, nil
}

// Run rasterizes, seeds, simulates both directions, stitches and publishes metrics to reg (may be nil)
func Run(cfg Config, reg *status.Registry) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := cfg.Raster()
	if err != nil {
		return nil, err
	}
	return RunGrid(cfg, grid, reg)
}

// RunGrid runs the pipeline from an existing raster
func RunGrid(cfg Config, grid glyph.Grid, reg *status.Registry) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	seeds := seeder.Generate(grid, cfg.SeedOptions(), rng)
	res := &Result{Config: cfg, Seeds: seeds, Empty: len(seeds) == 0}
	if res.Empty {
		log.Printf("scene: warning: raster for %q is empty, rendering a bare arena", cfg.Text)
	} else {
		log.Printf("scene: %d seeds from a %dx%d raster", len(seeds), grid.Rows(), grid.Cols())
	}

	fw, err := Build(cfg, seeds)
	if err != nil {
		return nil, err
	}
	res.Walls = slices.Clone(fw.Walls)
	res.Forward, err = engine.Simulate(fw, cfg.Duration, cfg.Timestep, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("scene: forward run: %w", err)
	}

	bw, err := Build(cfg, seeds)
	if err != nil {
		return nil, err
	}
	res.Backward, err = engine.SimulateBackward(bw, cfg.Duration, cfg.Timestep, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("scene: backward run: %w", err)
	}

	res.Trajectory, err = engine.Stitch(&res.Forward.Trajectory, &res.Backward.Trajectory)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	res.Energy = stitchSeries(res.Forward.Energy, res.Backward.Energy)
	res.Impacts = stitchImpacts(res.Forward.Impacts, res.Backward.Impacts)

	if reg != nil {
		publish(reg, res)
	}
	return res, nil
}

// stitchSeries mirrors a per-frame backward series onto negative time, dropping its t=0 entry
func stitchSeries(forward, backward []float64) []float64 {
	out := make([]float64, 0, len(forward)+len(backward))
	for i := len(backward) - 1; i > 0; i-- {
		out = append(out, backward[i])
	}
	return append(out, forward...)
}

func stitchImpacts(forward, backward []engine.Impact) []engine.Impact {
	out := make([]engine.Impact, 0, len(forward)+len(backward))
	for i := len(backward) - 1; i >= 0; i-- {
		imp := backward[i]
		imp.Time = -imp.Time
		out = append(out, imp)
	}
	return append(out, forward...)
}

func publish(reg *status.Registry, res *Result) {
	reg.Ints.Get(status.MetricSeeds).Store(int64(len(res.Seeds)))
	reg.Ints.Get(status.MetricFrames).Store(int64(res.Trajectory.Len()))
	reg.Ints.Get(status.MetricImpacts).Store(int64(len(res.Impacts)))
	reg.Floats.Get(status.MetricDuration).Set(res.Config.Duration)

	for _, dir := range []struct {
		prefix string
		run    *engine.Run
	}{{"forward.", res.Forward}, {"backward.", res.Backward}} {
		reg.Ints.Get(dir.prefix + status.MetricSteps).Store(int64(dir.run.Len()))
		reg.Ints.Get(dir.prefix + status.MetricRemoved).Store(int64(len(dir.run.Removals)))
		reg.Ints.Get(dir.prefix + status.MetricUnstable).Store(int64(len(dir.run.Unstable())))
		peak := reg.Floats.Get(dir.prefix + status.MetricPeakEnergy)
		for _, e := range dir.run.Energy {
			peak.Max(e)
		}
	}
}

// Scene assembles the render input; radii and colors come from the seeds
func (r *Result) Scene() *render.Scene {
	radii := make([]float64, len(r.Seeds))
	colors := make([]float64, len(r.Seeds))
	for i, s := range r.Seeds {
		radii[i] = s.Radius
		colors[i] = s.Color
	}
	return &render.Scene{
		Width:      r.Config.Width,
		Height:     r.Config.Height,
		Walls:      r.Walls,
		Radii:      radii,
		Colors:     colors,
		Trajectory: r.Trajectory,
		Timestep:   r.Config.Timestep,
		Subsample:  r.Config.Subsample,
		Resolution: r.Config.Resolution,
	}
}

// AudioEvents converts impacts into sonifier events voiced by the first body's radius
func (r *Result) AudioEvents() []audio.Event {
	events := make([]audio.Event, 0, len(r.Impacts))
	for _, imp := range r.Impacts {
		events = append(events, audio.Event{
			Time:   imp.Time,
			Radius: r.Seeds[imp.Body].Radius,
			Speed:  imp.Speed,
			Wall:   imp.Other == physics.WallContact,
		})
	}
	return events
}

// Series returns the stitched active-count and energy curves for the report
func (r *Result) Series() []status.Series {
	counts := r.Trajectory.ActiveCounts()
	active := make([]float64, len(counts))
	for i, c := range counts {
		active[i] = float64(c)
	}
	return []status.Series{
		{Name: "active bodies", Values: active},
		{Name: "kinetic energy", Values: r.Energy},
	}
}

// Span returns the stitched timeline bounds
func (r *Result) Span() (start, end float64) {
	return r.Trajectory.Span()
}

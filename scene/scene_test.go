package scene

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lixenwraith/textfall/glyph"
	"github.com/lixenwraith/textfall/status"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Duration = 0.2
	cfg.Art = "##\n##\n"
	return cfg
}

func TestRunStitchedTimeline(t *testing.T) {
	reg := status.NewRegistry()
	res, err := Run(smallConfig(), reg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Seeds) != 4 || res.Empty {
		t.Fatalf("Expected 4 seeds, got %d (empty=%v)", len(res.Seeds), res.Empty)
	}

	traj := res.Trajectory
	if err := traj.Validate(); err != nil {
		t.Fatalf("Invalid trajectory: %v", err)
	}
	if want := res.Forward.Len() + res.Backward.Len() - 1; traj.Len() != want {
		t.Errorf("Expected %d stitched frames, got %d", want, traj.Len())
	}
	zeros := 0
	for _, ts := range traj.Times {
		if ts == 0 {
			zeros++
		}
	}
	if zeros != 1 {
		t.Errorf("Expected exactly one t=0 frame, got %d", zeros)
	}
	start, end := res.Span()
	if start >= 0 || end <= 0 {
		t.Errorf("Expected span across zero, got [%g, %g]", start, end)
	}
	if len(res.Energy) != traj.Len() {
		t.Errorf("Energy has %d entries for %d frames", len(res.Energy), traj.Len())
	}
	for i := 1; i < len(res.Impacts); i++ {
		if res.Impacts[i].Time < res.Impacts[i-1].Time {
			t.Fatalf("Impacts out of order at %d", i)
		}
	}

	if got := reg.Ints.Get(status.MetricSeeds).Load(); got != 4 {
		t.Errorf("Published %d seeds", got)
	}
	if got := reg.Ints.Get(status.MetricFrames).Load(); got != int64(traj.Len()) {
		t.Errorf("Published %d frames", got)
	}
	if got := reg.Ints.Get("forward." + status.MetricSteps).Load(); got != int64(res.Forward.Len()) {
		t.Errorf("Published %d forward steps", got)
	}
	if reg.Floats.Get("forward."+status.MetricPeakEnergy).Get() <= 0 {
		t.Error("Expected positive peak energy")
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Seeds, b.Seeds) {
		t.Error("Seeds differ between equal runs")
	}
	if !reflect.DeepEqual(a.Trajectory, b.Trajectory) {
		t.Error("Trajectories differ between equal runs")
	}
}

func TestRunEmptyRaster(t *testing.T) {
	res, err := RunGrid(smallConfig(), glyph.NewGrid(3, 3), nil)
	if err != nil {
		t.Fatalf("RunGrid failed: %v", err)
	}
	if !res.Empty {
		t.Error("Expected Empty result")
	}
	if res.Trajectory.Len() != 1 || res.Trajectory.Times[0] != 0 {
		t.Errorf("Expected a single t=0 frame, got %v", res.Trajectory.Times)
	}
	if err := res.Scene().Validate(); err != nil {
		t.Errorf("Empty scene should still render: %v", err)
	}
}

func TestRunInelasticReportsInstability(t *testing.T) {
	cfg := smallConfig()
	cfg.Elasticity = 0
	cfg.Duration = 1
	cfg.CenterY = 1
	cfg.MaxWidth = 1
	cfg.MaxHeight = 1
	cfg.VRand = 0
	cfg.VRot = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected fully inelastic config to be valid: %v", err)
	}

	reg := status.NewRegistry()
	res, err := Run(cfg, reg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := len(res.Forward.Unstable()); n != 0 {
		t.Errorf("Expected a stable forward run, got %d unstable bodies", n)
	}
	// Inverted restitution 0 is infinite, so every body diverges at its first backward contact
	unstable := res.Backward.Unstable()
	if len(unstable) == 0 {
		t.Fatal("Expected the backward run to report unstable bodies")
	}
	if got := reg.Ints.Get("backward." + status.MetricUnstable).Load(); got != int64(len(unstable)) {
		t.Errorf("Published %d unstable bodies, want %d", got, len(unstable))
	}
	if err := res.Trajectory.Validate(); err != nil {
		t.Errorf("Invalid stitched trajectory: %v", err)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Timestep = -1
	if _, err := Run(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunText(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Text = "HI"
	cfg.Duration = 0.05
	res, err := Run(cfg, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Seeds) == 0 {
		t.Fatal("Expected seeds from rasterized text")
	}
	// All seeds start inside the placement box
	for i, s := range res.Seeds {
		if s.Pos.X < cfg.CenterX-cfg.MaxWidth/2 || s.Pos.X > cfg.CenterX+cfg.MaxWidth/2 {
			t.Fatalf("Seed %d x=%g outside box", i, s.Pos.X)
		}
	}
}

func TestResultOutputs(t *testing.T) {
	res, err := Run(smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := res.Scene()
	if err := s.Validate(); err != nil {
		t.Fatalf("Scene invalid: %v", err)
	}
	if len(s.Radii) != len(res.Seeds) {
		t.Errorf("Expected %d radii, got %d", len(res.Seeds), len(s.Radii))
	}
	if got := len(res.AudioEvents()); got != len(res.Impacts) {
		t.Errorf("Expected %d audio events, got %d", len(res.Impacts), got)
	}
	series := res.Series()
	if len(series) != 2 || len(series[0].Values) != res.Trajectory.Len() {
		t.Errorf("Unexpected series %+v", series)
	}
}

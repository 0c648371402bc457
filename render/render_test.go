package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/gif"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/engine"
	"github.com/lixenwraith/textfall/physics"
)

// testScene is a 4x3 arena at 10 px/unit with two bodies; body 1 is removed from frame 3 on
func testScene(t *testing.T) *Scene {
	t.Helper()
	w, err := physics.CreateWorld(4, 3, 1)
	if err != nil {
		t.Fatalf("CreateWorld failed: %v", err)
	}
	traj := &engine.Trajectory{}
	for i := range 5 {
		frame := engine.Snapshot{{ID: 0, Pos: r2.Vec{X: 1, Y: 1}}}
		if i < 3 {
			frame = append(frame, engine.Sample{ID: 1, Pos: r2.Vec{X: 3, Y: 2}})
		}
		traj.Append(float64(i)*0.05, frame)
	}
	return &Scene{
		Width:      4,
		Height:     3,
		Walls:      w.Walls,
		Radii:      []float64{0.3, 0.3},
		Colors:     []float64{0.25, 0.75},
		Trajectory: traj,
		Timestep:   0.05,
		Subsample:  2,
		Resolution: 10,
	}
}

func rgbaOf(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestRGBBlend(t *testing.T) {
	dst, src := RGBYellow, RGBBlack
	if got := dst.Blend(src, 0); got != dst {
		t.Errorf("Expected zero coverage to keep %v, got %v", dst, got)
	}
	if got := dst.Blend(src, 1.5); got != src {
		t.Errorf("Expected full coverage to take %v, got %v", src, got)
	}
	if got := dst.Blend(src, 0.5); got != (RGB{127, 127, 0}) {
		t.Errorf("Expected half blend (127,127,0), got %v", got)
	}
}

func TestColormapEndpoints(t *testing.T) {
	cm := Gnuplot2()
	if got := cm.At(0); got != RGBBlack {
		t.Errorf("At(0) = %v, want black", got)
	}
	if got := cm.At(1); got != (RGB{255, 255, 255}) {
		t.Errorf("At(1) = %v, want white", got)
	}
	if got := cm.At(0.25); got != (RGB{0, 0, 255}) {
		t.Errorf("At(0.25) = %v, want blue stop", got)
	}
	if cm.At(-3) != cm.At(0) || cm.At(7) != cm.At(1) {
		t.Error("Expected out-of-range input to clamp")
	}
	if n := len(cm.Samples(16)); n != 16 {
		t.Errorf("Samples(16) returned %d colors", n)
	}
}

func TestColormapRejectsBadStops(t *testing.T) {
	tests := []struct {
		name  string
		stops []ColorStop
	}{
		{"single stop", []ColorStop{{"#000000", 0}}},
		{"bad hex", []ColorStop{{"#000000", 0}, {"nope", 1}}},
		{"short span", []ColorStop{{"#000000", 0}, {"#ffffff", 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewColormap(tt.stops...); err == nil {
				t.Error("Expected error")
			}
		})
	}
	if _, err := ColormapByName("viridis"); err == nil {
		t.Error("Expected unknown colormap to fail")
	}
}

func TestFrameDrawsBodiesAndWalls(t *testing.T) {
	s := testScene(t)
	g := NewGIFRenderer()

	img, err := g.Frame(s, 0)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("Expected 40x30 canvas, got %v", b)
	}
	if got := img.RGBAAt(10, 20); got != g.Colormap.At(0.25).RGBA() {
		t.Errorf("Body 0 center = %v, want %v", got, g.Colormap.At(0.25).RGBA())
	}
	if got := img.RGBAAt(30, 10); got != g.Colormap.At(0.75).RGBA() {
		t.Errorf("Body 1 center = %v, want %v", got, g.Colormap.At(0.75).RGBA())
	}
	if got := img.RGBAAt(20, 5); got != RGBYellow.RGBA() {
		t.Errorf("Open field = %v, want background", got)
	}
	// Floor sits at y=0.1, pixel row 29, two pixels thick
	if got := img.RGBAAt(20, 28); got != RGBBlack.RGBA() {
		t.Errorf("Floor pixel = %v, want wall color", got)
	}

	img, err = g.Frame(s, 4)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if got := img.RGBAAt(30, 10); got != RGBYellow.RGBA() {
		t.Errorf("Removed body drawn: %v", got)
	}
}

func TestRenderGIF(t *testing.T) {
	s := testScene(t)
	var buf bytes.Buffer
	if err := NewGIFRenderer().Render(&buf, s); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Fatalf("Expected 3 frames for 5 at subsample 2, got %d", len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != 10 {
			t.Errorf("Frame %d delay = %d, want 10", i, d)
		}
	}
	if got := rgbaOf(anim.Image[0].At(20, 5)); got != RGBYellow.RGBA() {
		t.Errorf("Background = %v, want yellow", got)
	}
	if got := rgbaOf(anim.Image[0].At(10, 20)); got == RGBYellow.RGBA() {
		t.Error("Expected body pixel in first frame")
	}
}

func TestRenderEmptyTrajectory(t *testing.T) {
	s := testScene(t)
	s.Trajectory = &engine.Trajectory{}
	var buf bytes.Buffer
	if err := NewGIFRenderer().Render(&buf, s); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("DecodeAll failed: %v", err)
	}
	if len(anim.Image) != 1 {
		t.Errorf("Expected a single bare-arena frame, got %d", len(anim.Image))
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Scene)
	}{
		{"zero width", func(s *Scene) { s.Width = 0 }},
		{"zero resolution", func(s *Scene) { s.Resolution = 0 }},
		{"zero subsample", func(s *Scene) { s.Subsample = 0 }},
		{"zero timestep", func(s *Scene) { s.Timestep = 0 }},
		{"missing trajectory", func(s *Scene) { s.Trajectory = nil }},
		{"color mismatch", func(s *Scene) { s.Colors = s.Colors[:1] }},
		{"unknown body", func(s *Scene) { s.Radii, s.Colors = s.Radii[:1], s.Colors[:1] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScene(t)
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestClipSegment(t *testing.T) {
	// Vertical wall running far above the canvas
	_, y0, _, y1, ok := clipSegment(5, 100, 5, -5000, 0, 0, 40, 30)
	if !ok || y0 != 30 || y1 != 0 {
		t.Errorf("Expected clip to [30, 0], got [%g, %g] ok=%v", y0, y1, ok)
	}
	if _, _, _, _, ok := clipSegment(-10, -10, -5, -1, 0, 0, 40, 30); ok {
		t.Error("Expected segment outside the box to be rejected")
	}
}

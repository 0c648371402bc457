package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/lixenwraith/textfall/engine"
	"github.com/lixenwraith/textfall/physics"
)

var ErrInvalidScene = errors.New("render: invalid scene")

// Renderer encodes a scene into an output stream
type Renderer interface {
	Render(w io.Writer, s *Scene) error
}

// Scene is everything needed to draw a stitched run
// Radii and Colors are indexed by body ID; Colors hold colormap positions in [0, 1]
type Scene struct {
	Width, Height float64
	Walls         []physics.Wall
	Radii         []float64
	Colors        []float64
	Trajectory    *engine.Trajectory
	// Timestep is the simulation dt, the wall-clock spacing of stitched frames
	Timestep   float64
	Subsample  int
	Resolution float64
}

// Validate checks sizes and that every trajectory ID has a radius and color
func (s *Scene) Validate() error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil scene", ErrInvalidScene)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: arena %gx%g", ErrInvalidScene, s.Width, s.Height)
	case s.Resolution <= 0:
		return fmt.Errorf("%w: resolution %g", ErrInvalidScene, s.Resolution)
	case s.Subsample < 1:
		return fmt.Errorf("%w: subsample %d", ErrInvalidScene, s.Subsample)
	case s.Timestep <= 0:
		return fmt.Errorf("%w: timestep %g", ErrInvalidScene, s.Timestep)
	case s.Trajectory == nil:
		return fmt.Errorf("%w: no trajectory", ErrInvalidScene)
	case len(s.Radii) != len(s.Colors):
		return fmt.Errorf("%w: %d radii for %d colors", ErrInvalidScene, len(s.Radii), len(s.Colors))
	}
	for i, f := range s.Trajectory.Frames {
		for _, smp := range f {
			if smp.ID < 0 || smp.ID >= len(s.Radii) {
				return fmt.Errorf("%w: frame %d references body %d", ErrInvalidScene, i, smp.ID)
			}
		}
	}
	return nil
}

// FrameDelay returns the wall-clock seconds between rendered frames
func (s *Scene) FrameDelay() float64 {
	return s.Timestep * float64(s.Subsample)
}

// PixelSize returns the canvas size at the scene's resolution
func (s *Scene) PixelSize() (w, h int) {
	return max(1, int(s.Width*s.Resolution+0.5)), max(1, int(s.Height*s.Resolution+0.5))
}

// Command textfall-view runs the textfall pipeline and plays the result in a window
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/render"
	"github.com/lixenwraith/textfall/scene"
)

// viewer is the ebiten game playing one stitched trajectory
type viewer struct {
	sc       *render.Scene
	colors   []color.RGBA
	playback *render.Playback
	width    int
	height   int
}

func newViewer(sc *render.Scene) *viewer {
	cm := render.Gnuplot2()
	colors := make([]color.RGBA, len(sc.Colors))
	for i, c := range sc.Colors {
		colors[i] = cm.At(c).RGBA()
	}
	w, h := sc.PixelSize()
	return &viewer{
		sc:       sc,
		colors:   colors,
		playback: render.NewPlayback(sc.Trajectory.Len(), sc.Subsample, true),
		width:    w,
		height:   h,
	}
}

// Update advances playback and handles keys: space pause, arrows step, r restart, q/esc quit
func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.playback.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.playback.Step(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.playback.Step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.playback.Restart()
	}
	v.playback.Advance()
	return nil
}

func (v *viewer) toScreen(x, y float64) (float32, float32) {
	return float32(x * v.sc.Resolution), float32((v.sc.Height - y) * v.sc.Resolution)
}

// Draw is called each frame by Ebitengine
func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(render.RGBYellow.RGBA())

	for _, w := range v.sc.Walls {
		// Side walls reach far above the window; cut them just past the top edge
		x0, y0 := v.toScreen(w.A.X, math.Min(w.A.Y, v.sc.Height+1))
		x1, y1 := v.toScreen(w.B.X, math.Min(w.B.Y, v.sc.Height+1))
		vector.StrokeLine(screen, x0, y0, x1, y1, parameter.RenderWallWidth, render.RGBBlack.RGBA(), true)
	}

	idx := v.playback.Frame()
	for _, smp := range v.sc.Trajectory.Frames[idx] {
		x, y := v.toScreen(smp.Pos.X, smp.Pos.Y)
		r := float32(math.Max(v.sc.Radii[smp.ID]*v.sc.Resolution, parameter.RenderMinRadius))
		vector.DrawFilledCircle(screen, x, y, r, v.colors[smp.ID], true)
	}

	msg := fmt.Sprintf("t=%+.3fs  %d/%d", v.sc.Trajectory.Times[idx], v.playback.Position()+1, v.playback.Len())
	if v.playback.Paused() {
		msg += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout returns the arena size in pixels
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func main() {
	cfg := scene.DefaultConfig()
	configPath := flag.String("config", "", "TOML scene file applied over the defaults")
	debug := flag.Bool("debug", false, "Log pipeline progress to stderr")
	flag.StringVar(&cfg.Text, "text", cfg.Text, "Text to rasterize")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for initial velocities")
	flag.Float64Var(&cfg.Elasticity, "elasticity", cfg.Elasticity, "Restitution of bodies and walls")
	flag.Float64Var(&cfg.Duration, "duration", cfg.Duration, "Seconds simulated in each direction")
	flag.Float64Var(&cfg.Resolution, "resolution", cfg.Resolution, "Pixels per world unit")
	flag.Parse()

	if !*debug {
		log.SetOutput(io.Discard)
	}
	if *configPath != "" {
		// Flags given on the command line win over the file
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		fromFlags := cfg
		if err := scene.LoadFile(*configPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "textfall-view: %v\n", err)
			os.Exit(2)
		}
		overrideSet(&cfg, fromFlags, set)
	}
	scene.ApplyEnv(&cfg)

	res, err := scene.Run(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "textfall-view: %v\n", err)
		os.Exit(1)
	}

	v := newViewer(res.Scene())
	ebiten.SetWindowSize(v.width*2, v.height*2)
	ebiten.SetWindowTitle("textfall: " + cfg.Text)
	ebiten.SetTPS(max(1, int(math.Round(1/res.Scene().FrameDelay()))))
	if err := ebiten.RunGame(v); err != nil {
		fmt.Fprintf(os.Stderr, "textfall-view: %v\n", err)
		os.Exit(1)
	}
}

func overrideSet(cfg *scene.Config, from scene.Config, set map[string]bool) {
	if set["text"] {
		cfg.Text = from.Text
	}
	if set["seed"] {
		cfg.Seed = from.Seed
	}
	if set["elasticity"] {
		cfg.Elasticity = from.Elasticity
	}
	if set["duration"] {
		cfg.Duration = from.Duration
	}
	if set["resolution"] {
		cfg.Resolution = from.Resolution
	}
}

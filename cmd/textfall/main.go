package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/textfall/audio"
	"github.com/lixenwraith/textfall/render"
	"github.com/lixenwraith/textfall/scene"
	"github.com/lixenwraith/textfall/status"
	"github.com/lixenwraith/textfall/terminal"
)

// screen is set while the terminal preview is active so a panic can restore it
var screen tcell.Screen

func main() {
	// Panic Recovery: Ensure terminal is reset even if playback crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTEXTFALL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, opts, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "textfall: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "textfall: %v\n", err)
		os.Exit(1)
	}
}

// run executes the pipeline and writes every requested artifact
// The report goes to out; user-facing warnings go to errOut
func run(cfg scene.Config, opts options, out, errOut io.Writer) error {
	reg := status.NewRegistry()
	res, err := scene.Run(cfg, reg)
	if err != nil {
		return err
	}
	if res.Empty {
		fmt.Fprintf(errOut, "textfall: warning: %q produced no particles\n", cfg.Text)
	}

	sc := res.Scene()
	if err := writeGIF(cfg.Output, sc); err != nil {
		return err
	}
	log.Printf("textfall: wrote %s (%d frames)", cfg.Output, res.Trajectory.Len())

	if cfg.AudioOutput != "" {
		peak, err := writeAudio(cfg.AudioOutput, res)
		if err != nil {
			return err
		}
		reg.Floats.Get(status.MetricAudioPeak).Set(peak)
		log.Printf("textfall: wrote %s (%d impacts, peak %.3f)", cfg.AudioOutput, len(res.Impacts), peak)
	}

	if opts.report {
		if err := status.Report(out, "textfall "+cfg.Output, reg, res.Series()...); err != nil {
			return err
		}
	}

	if cfg.Preview {
		if opts.sound {
			defer playSound(res)()
		}
		return preview(sc)
	}
	return nil
}

func writeGIF(path string, sc *render.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.NewGIFRenderer().Render(f, sc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeAudio encodes the impact track and returns its peak amplitude
func writeAudio(path string, res *scene.Result) (float64, error) {
	start, end := res.Span()
	track, err := audio.Sonify(res.AudioEvents(), start, end, audio.LoadConfig())
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	if err := audio.WriteWAV(f, track); err != nil {
		f.Close()
		return 0, err
	}
	return track.Peak(), f.Close()
}

func preview(sc *render.Scene) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	screen = s
	defer func() {
		s.Fini()
		screen = nil
	}()

	player, err := terminal.NewPlayer(s, sc, true)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := player.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// playSound starts the impact track on the default audio device; failure is non-fatal
func playSound(res *scene.Result) (stop func()) {
	cfg := audio.LoadConfig()
	start, end := res.Span()
	track, err := audio.Sonify(res.AudioEvents(), start, end, cfg)
	if err != nil {
		log.Printf("textfall: sonify: %v", err)
		return func() {}
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		log.Printf("Audio initialization failed: %v", err)
		return func() {}
	}
	speaker.Play(track)
	return speaker.Close
}

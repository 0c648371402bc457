package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lixenwraith/textfall/scene"
)

// options are CLI switches that are not part of the scene
type options struct {
	configPath string
	debug      bool
	report     bool
	sound      bool
}

// bindFlags registers one flag per config field, pointing into cfg
func bindFlags(fs *flag.FlagSet, cfg *scene.Config, opts *options) {
	fs.StringVar(&opts.configPath, "config", "", "TOML scene file applied over the defaults")
	fs.BoolVar(&opts.debug, "debug", false, "Write logs to logs/textfall.log")
	fs.BoolVar(&opts.report, "report", false, "Print run metrics and plots after rendering")
	fs.BoolVar(&opts.sound, "sound", false, "Play impact sounds during -preview")

	fs.StringVar(&cfg.Text, "text", cfg.Text, "Text to rasterize")
	fs.StringVar(&cfg.FontPath, "font", cfg.FontPath, "OpenType/TrueType font (empty uses the built-in 7x13 face)")
	fs.Float64Var(&cfg.FontSize, "font-size", cfg.FontSize, "Font size in points for scalable fonts")

	fs.Float64Var(&cfg.Width, "width", cfg.Width, "Arena width")
	fs.Float64Var(&cfg.Height, "height", cfg.Height, "Arena height, also the escape bound")
	fs.Float64Var(&cfg.Elasticity, "elasticity", cfg.Elasticity, "Restitution of bodies and walls, in [0, 1]")
	fs.Float64Var(&cfg.Duration, "duration", cfg.Duration, "Seconds simulated in each direction")
	fs.Float64Var(&cfg.Timestep, "dt", cfg.Timestep, "Simulation timestep in seconds")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for initial velocities")

	fs.Float64Var(&cfg.CenterX, "cx", cfg.CenterX, "Text center x")
	fs.Float64Var(&cfg.CenterY, "cy", cfg.CenterY, "Text center y")
	fs.Float64Var(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Width of the text placement box")
	fs.Float64Var(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "Height of the text placement box")
	fs.Float64Var(&cfg.VRand, "vrand", cfg.VRand, "Random velocity magnitude")
	fs.Float64Var(&cfg.VRot, "vrot", cfg.VRot, "Swirl velocity per unit distance from the text center")
	fs.Float64Var(&cfg.VNoise, "vnoise", cfg.VNoise, "Perlin turbulence velocity scale (0 disables)")

	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Collision solver passes per step")
	fs.Float64Var(&cfg.SpeedLimit, "speed-limit", cfg.SpeedLimit, "Speed above which a body counts as unstable")

	fs.IntVar(&cfg.Subsample, "subsample", cfg.Subsample, "Render every Nth timestep")
	fs.Float64Var(&cfg.Resolution, "resolution", cfg.Resolution, "Pixels per world unit")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Output GIF path")
	fs.StringVar(&cfg.AudioOutput, "audio", cfg.AudioOutput, "Optional WAV path for impact sounds")
	fs.BoolVar(&cfg.Preview, "preview", cfg.Preview, "Play the result in the terminal")
}

// parseConfig layers defaults, the -config file, TEXTFALL_* variables and explicit flags
func parseConfig(args []string, stderr io.Writer) (scene.Config, options, error) {
	cfg := scene.DefaultConfig()
	var opts options

	fs := flag.NewFlagSet("textfall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bindFlags(fs, &cfg, &opts)
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}
	if fs.NArg() > 0 {
		return cfg, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Second pass: file and env sit under explicit flags
	cfg = scene.DefaultConfig()
	if opts.configPath != "" {
		if err := scene.LoadFile(opts.configPath, &cfg); err != nil {
			return cfg, opts, err
		}
	}
	scene.ApplyEnv(&cfg)

	fs = flag.NewFlagSet("textfall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bindFlags(fs, &cfg, &opts)
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	return cfg, opts, cfg.Validate()
}

package scene

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/textfall/glyph"
	"github.com/lixenwraith/textfall/parameter"
	"github.com/lixenwraith/textfall/seeder"
)

var ErrInvalidConfig = errors.New("scene: invalid config")

// Config is one run's parameters; it is passed by value and never mutated by the pipeline
type Config struct {
	Text string `toml:"text"`
	// Art replaces Text with a '#'/'.' raster when set
	Art      string  `toml:"art"`
	FontPath string  `toml:"font"`
	FontSize float64 `toml:"font_size"`

	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Elasticity float64 `toml:"elasticity"`
	Duration   float64 `toml:"duration"`
	Timestep   float64 `toml:"timestep"`
	Seed       int64   `toml:"seed"`

	CenterX   float64 `toml:"center_x"`
	CenterY   float64 `toml:"center_y"`
	MaxWidth  float64 `toml:"max_width"`
	MaxHeight float64 `toml:"max_height"`
	VRand     float64 `toml:"vrand"`
	VRot      float64 `toml:"vrot"`
	VNoise    float64 `toml:"vnoise"`

	Iterations int     `toml:"iterations"`
	SpeedLimit float64 `toml:"speed_limit"`

	Subsample  int     `toml:"subsample"`
	Resolution float64 `toml:"resolution"`

	Output      string `toml:"output"`
	AudioOutput string `toml:"audio_output"`
	Preview     bool   `toml:"preview"`
}

// DefaultConfig reproduces the reference clip
func DefaultConfig() Config {
	return Config{
		Text:       parameter.DefaultText,
		FontSize:   parameter.GlyphDefaultSize,
		Width:      parameter.DefaultWidth,
		Height:     parameter.DefaultHeight,
		Elasticity: parameter.DefaultElasticity,
		Duration:   parameter.DefaultDuration,
		Timestep:   parameter.DefaultTimestep,
		Seed:       parameter.DefaultSeed,
		CenterX:    parameter.DefaultCenterX,
		CenterY:    parameter.DefaultCenterY,
		MaxWidth:   parameter.DefaultMaxWidth,
		MaxHeight:  parameter.DefaultMaxHeight,
		VRand:      parameter.DefaultVRand,
		VRot:       parameter.DefaultVRot,
		VNoise:     parameter.DefaultVNoise,
		Iterations: parameter.SolverIterations,
		SpeedLimit: parameter.SpeedLimit,
		Subsample:  parameter.DefaultSubsample,
		Resolution: parameter.DefaultResolution,
		Output:     parameter.DefaultOutput,
	}
}

// LoadFile decodes a TOML scene file over cfg; unknown keys are an error
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("scene: load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("scene: load %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalidConfig)
	}
	return nil
}

// ApplyEnv overrides cfg from TEXTFALL_* variables; unparsable values are ignored
func ApplyEnv(cfg *Config) {
	if text := os.Getenv("TEXTFALL_TEXT"); text != "" {
		cfg.Text = text
	}
	if font := os.Getenv("TEXTFALL_FONT"); font != "" {
		cfg.FontPath = font
	}
	if output := os.Getenv("TEXTFALL_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if seed := os.Getenv("TEXTFALL_SEED"); seed != "" {
		if val, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Seed = val
		}
	}
	envFloat("TEXTFALL_ELASTICITY", &cfg.Elasticity)
	envFloat("TEXTFALL_DURATION", &cfg.Duration)
	envFloat("TEXTFALL_TIMESTEP", &cfg.Timestep)
	envFloat("TEXTFALL_VNOISE", &cfg.VNoise)
}

func envFloat(name string, dst *float64) {
	if s := os.Getenv(name); s != "" {
		if val, err := strconv.ParseFloat(s, 64); err == nil {
			*dst = val
		}
	}
}

// Validate rejects values the pipeline cannot run; errors wrap ErrInvalidConfig and name the field
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"duration", c.Duration},
		{"timestep", c.Timestep},
		{"max_width", c.MaxWidth},
		{"max_height", c.MaxHeight},
		{"resolution", c.Resolution},
		{"speed_limit", c.SpeedLimit},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidConfig, p.name, p.v)
		}
	}
	if !(c.Elasticity >= 0 && c.Elasticity <= 1) {
		return fmt.Errorf("%w: elasticity must be in [0, 1], got %g", ErrInvalidConfig, c.Elasticity)
	}
	if c.Subsample < 1 {
		return fmt.Errorf("%w: subsample must be at least 1, got %d", ErrInvalidConfig, c.Subsample)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.FontSize < 0 {
		return fmt.Errorf("%w: font_size must not be negative, got %g", ErrInvalidConfig, c.FontSize)
	}
	for _, v := range []struct {
		name string
		v    float64
	}{{"center_x", c.CenterX}, {"center_y", c.CenterY}, {"vrand", c.VRand}, {"vrot", c.VRot}, {"vnoise", c.VNoise}} {
		if math.IsNaN(v.v) || math.IsInf(v.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, v.name)
		}
	}
	return nil
}

// Raster returns the occupancy grid for Art or Text
func (c Config) Raster() (glyph.Grid, error) {
	if c.Art != "" {
		return glyph.ParseGrid(c.Art)
	}
	face, err := glyph.LoadFace(c.FontPath, c.FontSize)
	if err != nil {
		return glyph.Grid{}, err
	}
	return glyph.FaceRasterizer{Face: face}.Rasterize(c.Text)
}

// SeedOptions maps the placement fields onto seeder options
func (c Config) SeedOptions() seeder.Options {
	return seeder.Options{
		Center:    r2.Vec{X: c.CenterX, Y: c.CenterY},
		MaxWidth:  c.MaxWidth,
		MaxHeight: c.MaxHeight,
		VRand:     c.VRand,
		VRot:      c.VRot,
		VNoise:    c.VNoise,
	}
}

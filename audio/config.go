package audio

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lixenwraith/textfall/parameter"
)

// Config controls impact sonification
type Config struct {
	SampleRate int
	// Gain scales every click, 0..1
	Gain float64
	// MaxPerStep caps clicks sharing one timestamp
	MaxPerStep int
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() *Config {
	return &Config{
		SampleRate: parameter.AudioSampleRate,
		Gain:       parameter.ImpactGain,
		MaxPerStep: parameter.ImpactMaxPerStep,
	}
}

// LoadConfig applies TEXTFALL_SAMPLE_RATE, TEXTFALL_AUDIO_GAIN (0-100) and
// TEXTFALL_AUDIO_MAX_PER_STEP over the defaults; unparsable values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if sampleRate := os.Getenv("TEXTFALL_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	// Gain given as percent, clamped to [0, 1]
	if gain := os.Getenv("TEXTFALL_AUDIO_GAIN"); gain != "" {
		if val, err := strconv.Atoi(gain); err == nil {
			cfg.Gain = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if perStep := os.Getenv("TEXTFALL_AUDIO_MAX_PER_STEP"); perStep != "" {
		if val, err := strconv.Atoi(perStep); err == nil && val > 0 {
			cfg.MaxPerStep = val
		}
	}

	return cfg
}

// Validate rejects configs Sonify cannot use
func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.Gain < 0 || c.Gain > 1:
		return fmt.Errorf("%w: gain %g", ErrInvalidConfig, c.Gain)
	case c.MaxPerStep < 1:
		return fmt.Errorf("%w: max per step %d", ErrInvalidConfig, c.MaxPerStep)
	}
	return nil
}

package audio

import "errors"

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Event is one impact to sonify
// Time is on the caller's timeline; Sonify shifts it by the requested origin
type Event struct {
	Time   float64
	Radius float64
	Speed  float64
	// Wall marks a body-wall contact, voiced with a harder wave
	Wall bool
}

// Sentinel errors
var (
	ErrInvalidConfig = errors.New("audio: invalid config")
	ErrEmptyTimeline = errors.New("audio: empty timeline")
)

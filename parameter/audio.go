package parameter

import "time"

// Sonification
const (
	AudioSampleRate = 44100

	// ImpactClickDuration is the length of one impact sound
	ImpactClickDuration = 40 * time.Millisecond
	// ImpactAttack/Release shape the click envelope
	ImpactAttack  = 2 * time.Millisecond
	ImpactRelease = 30 * time.Millisecond

	// ImpactBaseFreq is the pitch (Hz) of a body with ImpactRefRadius
	ImpactBaseFreq  = 880.0
	ImpactRefRadius = 0.1
	// ImpactFreqMin/Max clamp the radius-derived pitch
	ImpactFreqMin = 110.0
	ImpactFreqMax = 3520.0

	// ImpactRefSpeed maps to full click volume; faster impacts saturate
	ImpactRefSpeed = 5.0
	// ImpactGain scales each click so dense bursts do not clip
	ImpactGain = 0.2
	// ImpactMaxPerStep caps clicks sharing one timestep, loudest first
	ImpactMaxPerStep = 8
)

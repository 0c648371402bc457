package parameter

// Default run, matching the reference clip
const (
	DefaultText       = "THIS IS ROCKET LEAGUE!!!!"
	DefaultWidth      = 16.0
	DefaultHeight     = 9.0
	DefaultElasticity = 0.99
	DefaultDuration   = 4.0
	DefaultTimestep   = 1.0 / 300.0
	DefaultSeed       = 0

	DefaultCenterX   = 8.0
	DefaultCenterY   = 4.5
	DefaultMaxWidth  = 12.0
	DefaultMaxHeight = 5.0
	DefaultVRand     = 0.5
	DefaultVRot      = 3.0
	DefaultVNoise    = 0.0

	DefaultOutput = "bouncing_balls.gif"
)

// Rendering
const (
	// DefaultSubsample renders one of every N timesteps (300 steps/sec / 10 = 30 fps)
	DefaultSubsample = 10

	// DefaultResolution is pixels per world unit; 30 gives 480x270 for a 16x9 arena
	DefaultResolution = 30

	// RenderWallWidth is the drawn wall thickness in pixels
	RenderWallWidth = 2.0

	// RenderColormap names the default gradient
	RenderColormap = "gnuplot2"

	// RenderPaletteLevels is the number of colormap entries in the GIF palette
	// Background and wall colors take the remaining two of 256
	RenderPaletteLevels = 254

	// RenderMinRadius keeps sub-pixel bodies visible, in pixels
	RenderMinRadius = 0.5
)

// Terminal playback
const (
	// TerminalMaxFPS caps the terminal redraw rate
	TerminalMaxFPS = 30
)

package parameter

// World
const (
	// GravityY is the vertical gravitational acceleration (units/sec²), pointing down
	GravityY = -9.82

	// Damping is the fraction of velocity retained per second of simulated time
	Damping = 0.9999

	// WallGap insets the arena walls from the nominal rectangle edges
	WallGap = 0.1

	// WallRadius is the thickness radius of every static segment
	WallRadius = 0.01

	// WallHeightFactor makes side walls tall enough that bodies only leave over the top
	WallHeightFactor = 100.0

	// BodyDensity converts circle area to mass
	BodyDensity = 1.0
)

// Solver
const (
	// SolverIterations is the number of collision passes per step
	// Stacked contacts near the floor need several passes to settle
	SolverIterations = 6

	// SeparationSlop is the extra distance added when pushing overlapping pairs apart
	SeparationSlop = 1e-6

	// BroadphaseCellFactor scales the largest body diameter into a grid cell size
	BroadphaseCellFactor = 1.0
)

// Instability detection
const (
	// SpeedLimit is the speed (units/sec) above which a body is considered diverged
	SpeedLimit = 1e3

	// PositionLimit is the coordinate magnitude above which a body is considered diverged
	PositionLimit = 1e6
)

// Impacts
const (
	// ImpactMinSpeed is the normal approach speed below which contacts are resting, not impacts
	ImpactMinSpeed = 0.5
)

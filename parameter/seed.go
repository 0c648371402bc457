package parameter

// Particle seeding
const (
	// SeedFillFraction is the share of the cell pitch covered by a particle diameter
	SeedFillFraction = 0.9

	// SeedColorOffset lifts the color scalar so no particle maps to exactly zero
	SeedColorOffset = 0.25

	// SeedColorSpan is the color range covered from raster bottom to top
	SeedColorSpan = 0.5

	// SeedNoiseAlpha/Beta/Octaves configure the Perlin turbulence field
	SeedNoiseAlpha   = 2.0
	SeedNoiseBeta    = 2.0
	SeedNoiseOctaves = 3

	// SeedNoiseCells is the turbulence feature size in raster cells
	SeedNoiseCells = 8.0

	// SeedNoiseOffset decorrelates the x and y turbulence samples
	SeedNoiseOffset = 37.1
)

// Glyph rasterization
const (
	// GlyphCoverageThreshold is the alpha above which a pixel counts as filled (0-255)
	GlyphCoverageThreshold = 128

	// GlyphDefaultSize is the point size used for scalable fonts when none is given
	GlyphDefaultSize = 8.0

	// GlyphDPI is the resolution used to build scalable font faces
	GlyphDPI = 72.0
)

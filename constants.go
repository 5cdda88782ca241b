package thames

// Earth reference constants, unchanged from the source.
const (
	// MuEarth is the Earth gravitational parameter, km^3/s^2.
	MuEarth = 3.986004414498200e5
	// REarth is the Earth equatorial radius, km.
	REarth = 6378.13646
	// OmegaEarth is the Earth rotation rate, rad/s.
	OmegaEarth = 7.292115855306587e-5

	// J2EarthHeader is the J2 value carried in the repository header
	// this engine's formulas were grounded on.
	J2EarthHeader = 1.082635854e-3
	// J2EarthReference is the J2 value used by the reference "main"
	// propagation run (the value the end-to-end scenarios use).
	//
	// The core never defaults to either of these: every J2 provider
	// constructor requires the caller to name one explicitly (see the
	// Open Question recorded in DESIGN.md).
	J2EarthReference = 1.082626111e-3
)

// Default Newton tolerance (the source's default) and iteration cap
// (an addition of this engine; the source has no cap).
const (
	defaultNewtonTol  = 1e-10
	defaultNewtonIter = 50
)

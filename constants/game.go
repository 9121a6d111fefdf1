package constants

// Spawn Placement
const (
	// MaxPlacementAttempts bounds the random search for an in-bounds spawn position
	// The last attempt is used as-is once exhausted
	MaxPlacementAttempts = 100
)

// Round Presentation
const (
	// WinnerPulseAmplitude is the relative size swing of the winner disc
	WinnerPulseAmplitude = 0.15

	// WinnerPulseRate is the pulse angular rate in radians per second of win time
	WinnerPulseRate = 5.0

	// RingDotCount is the number of dots sampled along the ring outline
	RingDotCount = 360
)

// Terminal Presentation
const (
	// WinnerZoom magnifies the winner drawn at the ring center
	WinnerZoom = 3.0

	// CellAspect is the height of a terminal cell in units of its width
	CellAspect = 2.0

	// StatusRows are reserved at the top of the screen
	StatusRows = 1
)

package parameter

// Default palette, overridable through config. Hex strings are parsed once at
// population-generation time.
const (
	// CoreColorHex is the single fixed color of every core particle
	CoreColorHex = "#FFD9A0"

	// RingInnerColorHex/RingOuterColorHex are the gradient endpoints for ring
	// particles, interpolated by orbit radius
	RingInnerColorHex = "#64B4FF"
	RingOuterColorHex = "#B464FF"
)

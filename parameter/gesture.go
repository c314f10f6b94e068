package parameter

// Openness extraction
const (
	// OpennessClosedRef is the mean fingertip-to-wrist distance of a closed fist
	// in normalized image coordinates; readings at or below map to openness 0
	OpennessClosedRef = 0.2

	// OpennessOpenRef is the mean fingertip-to-wrist distance of a fully spread
	// hand; readings at or above map to openness 1
	OpennessOpenRef = 0.55
)

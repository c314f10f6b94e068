package parameter

// Synthetic hand
const (
	// SynthSampleRate is the default synthetic detector cadence (Hz), matching
	// a typical camera pipeline rather than the render tick
	SynthSampleRate = 30

	// SynthOpennessFreq scales noise time for the openness trajectory (lower
	// is slower hand motion)
	SynthOpennessFreq = 0.35

	// SynthOpennessSwing amplifies the noise around the midpoint so the full
	// [0,1] openness range is reachable
	SynthOpennessSwing = 1.6

	// SynthDropoutFreq scales noise time for dropout windows
	SynthDropoutFreq = 0.15

	// SynthDropoutLane offsets the dropout noise lane away from the openness
	// lane so the two read independent values from one generator
	SynthDropoutLane = 137.0
)

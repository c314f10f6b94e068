package parameter

// Population
const (
	// SwarmCount is the default particle population size
	SwarmCount = 15000

	// CoreFraction of the population (by construction order) forms the central cluster
	CoreFraction = 0.2

	// CoreRadiusMax bounds core orbit radii: drawn uniformly from [0, CoreRadiusMax] (world units)
	CoreRadiusMax = 2.5

	// CoreSpeedMin/Max bound core base speed draws
	CoreSpeedMin = 0.5
	CoreSpeedMax = 1.0

	// CoreSizeMin/Max bound core size draws
	CoreSizeMin = 0.5
	CoreSizeMax = 1.0
)

// Ring bands. Band selection draws u in [0,1): u < RingInnerSelect picks the
// inner dense ring, u < RingGapSelect the sparse gap, the rest the outer ring.
const (
	RingInnerSelect = 0.3
	RingGapSelect   = 0.4

	RingInnerRadiusMin = 4.0
	RingInnerRadiusMax = 6.0
	RingGapRadiusMin   = 6.5
	RingGapRadiusMax   = 7.0
	RingOuterRadiusMin = 7.0
	RingOuterRadiusMax = 10.0

	// RingSpeed is the fixed base speed of every ring particle
	RingSpeed = 2.0

	// RingSizeMin/Max bound ring size draws, [min, max)
	RingSizeMin = 0.2
	RingSizeMax = 0.5

	// RingColorRadiusBase/Span map orbit radius onto the ring color gradient:
	// t = (radius - base) / span
	RingColorRadiusBase = 4.0
	RingColorRadiusSpan = 6.0
)

// Motion model
const (
	// RadiusSoftening guards the angular-speed division near radius zero:
	// angularSpeed = baseSpeed / sqrt(radius + RadiusSoftening)
	RadiusSoftening = 0.1

	// AngleTimeScale slows angle advance: angle = offset + angularSpeed * t * AngleTimeScale
	AngleTimeScale = 0.5

	// WaveAmplitude scales the out-of-plane vertical wave relative to orbit radius
	WaveAmplitude = 0.1

	// ChaosAmplitude is the jitter displacement magnitude at full expansion (world units)
	ChaosAmplitude = 2.0

	// ChaosFreqX/Y/Z are fixed non-harmonic jitter frequencies (rad/sec) so the
	// turbulence never visibly loops
	ChaosFreqX = 3.1
	ChaosFreqY = 2.7
	ChaosFreqZ = 3.7

	// ChaosMixLow/High are the smoothstep edges mapping expansion to the chaos blend
	ChaosMixLow  = 0.7
	ChaosMixHigh = 1.0

	// FieldScaleGain grows the whole field with expansion: scale = 1 + expansion*FieldScaleGain
	FieldScaleGain = 5.0
)

// Visual weight
const (
	// SizeGain grows apparent particle size with expansion: size * (1 + SizeGain*expansion)
	SizeGain = 2.0

	// IntensityBase/Gain map expansion to the brightness multiplier:
	// intensity = IntensityBase + IntensityGain*expansion (may exceed 1, renderer clamps)
	IntensityBase = 0.6
	IntensityGain = 2.0

	// FlashThreshold is the expansion level above which particles blend toward white
	FlashThreshold = 0.9
)

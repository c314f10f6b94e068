package parameter

// Driving-signal smoothing
const (
	// SignalAttack is the one-sided EMA coefficient applied when a fresh reading
	// arrives: expansion += SignalAttack * (reading - expansion)
	SignalAttack = 0.1

	// SignalDecay multiplies expansion on every fresh no-detection event,
	// relaxing the field toward the closed state after tracking loss
	SignalDecay = 0.95
)

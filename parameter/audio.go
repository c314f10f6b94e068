package parameter

// Swarm hum
const (
	// HumSampleRate is the output sample rate (Hz)
	HumSampleRate = 44100

	// HumBaseFreq is the oscillator frequency at expansion 0 (Hz)
	HumBaseFreq = 70.0

	// HumFreqGain raises pitch with expansion: freq = HumBaseFreq + expansion*HumFreqGain
	HumFreqGain = 180.0

	// HumBaseAmp/AmpGain map expansion to output amplitude
	HumBaseAmp = 0.05
	HumAmpGain = 0.25

	// HumTurbulenceAmp is the noise layer amplitude at full chaos mix
	HumTurbulenceAmp = 0.12

	// HumSmooth is the per-sample smoothing coefficient on the control values,
	// avoids zipper noise when expansion jumps between buffers
	HumSmooth = 0.001
)

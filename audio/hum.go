package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/swarm"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

const sampleRate = beep.SampleRate(parameter.HumSampleRate)

// HumGenerator streams the field's drone. Pitch and level ride the
// expansion scalar, and a turbulence layer fades in with the chaos mix
// near full expansion. Control values are smoothed per sample so jumps
// between buffers do not click.
type HumGenerator struct {
	expansion func() float64

	freq  float64
	amp   float64
	phase float64
	noise *vmath.FastRand
}

// NewHumGenerator creates a hum driven by the given expansion reader.
// The reader is called once per buffer from the speaker goroutine.
func NewHumGenerator(expansion func() float64) *HumGenerator {
	return &HumGenerator{
		expansion: expansion,
		freq:      parameter.HumBaseFreq,
		noise:     vmath.NewFastRand(1),
	}
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	e := g.expansion()
	targetFreq := parameter.HumBaseFreq + e*parameter.HumFreqGain
	targetAmp := parameter.HumBaseAmp + e*parameter.HumAmpGain
	turbulence := swarm.ChaosMix(e) * parameter.HumTurbulenceAmp

	for i := range samples {
		g.freq += parameter.HumSmooth * (targetFreq - g.freq)
		g.amp += parameter.HumSmooth * (targetAmp - g.amp)

		sample := g.amp * math.Sin(2*math.Pi*g.phase)
		if turbulence > 0 {
			sample += turbulence * g.amp * (g.noise.Float64()*2 - 1)
		}

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += g.freq / float64(sampleRate)
		g.phase -= math.Floor(g.phase)
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error { return nil }

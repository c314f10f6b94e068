package swarm

import (
	"math"

	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

// Position returns the particle's world position at elapsed time t seconds
// under the given expansion. Pure function of its inputs: no hidden state,
// safe to evaluate concurrently for different particles.
//
// Inner particles orbit faster than outer ones (inverse square root of
// radius); a small vertical wave at twice the orbital frequency keeps the
// field from collapsing into a flat disc. Above the chaos threshold the
// orderly orbit blends into per-particle sinusoid jitter, and the whole
// field scales up with expansion.
func Position(p *Particle, t, expansion float64) vmath.Vec3 {
	angularSpeed := p.BaseSpeed / math.Sqrt(p.OrbitRadius+parameter.RadiusSoftening)
	angle := p.AngleOffset + angularSpeed*t*parameter.AngleTimeScale

	pos := vmath.Vec3{
		X: math.Cos(angle) * p.OrbitRadius,
		Y: math.Sin(2*angle+p.AngleOffset) * parameter.WaveAmplitude * p.OrbitRadius,
		Z: math.Sin(angle) * p.OrbitRadius,
	}

	if mix := ChaosMix(expansion); mix > 0 {
		pos = vmath.V3Lerp(pos, vmath.V3Add(pos, chaosJitter(t, p.Seed, expansion)), mix)
	}

	return vmath.V3Scale(pos, 1+expansion*parameter.FieldScaleGain)
}

// chaosJitter is the turbulent displacement: three phase-shifted sinusoids
// of t and the particle seed, amplitude-scaled by expansion. Deterministic,
// so turbulence replays identically for the same inputs.
func chaosJitter(t, seed, expansion float64) vmath.Vec3 {
	phase := seed * vmath.TwoPi
	amp := expansion * parameter.ChaosAmplitude
	return vmath.Vec3{
		X: math.Sin(t*parameter.ChaosFreqX+phase) * amp,
		Y: math.Sin(t*parameter.ChaosFreqY+phase*2) * amp,
		Z: math.Sin(t*parameter.ChaosFreqZ+phase*3) * amp,
	}
}

// ChaosMix maps expansion to the orbital-to-turbulent blend weight:
// 0 at or below the low edge, 1 at full expansion, smooth in between
func ChaosMix(expansion float64) float64 {
	return vmath.Smoothstep(parameter.ChaosMixLow, parameter.ChaosMixHigh, expansion)
}

// VisualWeight carries the expansion-driven draw attributes of one particle
type VisualWeight struct {
	Size      float64 // apparent size after expansion growth
	Intensity float64 // brightness multiplier, may exceed 1, renderer clamps
	Flash     float64 // white-blend weight, nonzero above the flash threshold
}

// Visual returns the draw attributes for one particle at the given expansion
func Visual(p *Particle, expansion float64) VisualWeight {
	return VisualWeight{
		Size:      p.Size * (1 + parameter.SizeGain*expansion),
		Intensity: parameter.IntensityBase + parameter.IntensityGain*expansion,
		Flash:     vmath.Clamp01((expansion - parameter.FlashThreshold) / (1 - parameter.FlashThreshold)),
	}
}

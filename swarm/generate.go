package swarm

import (
	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/render"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

// Palette holds the three color anchors of the field
type Palette struct {
	Core      render.RGB
	RingInner render.RGB
	RingOuter render.RGB
}

// DefaultPalette returns the built-in anchors from the parameter defaults
func DefaultPalette() Palette {
	core, _ := render.HexRGB(parameter.CoreColorHex)
	inner, _ := render.HexRGB(parameter.RingInnerColorHex)
	outer, _ := render.HexRGB(parameter.RingOuterColorHex)
	return Palette{Core: core, RingInner: inner, RingOuter: outer}
}

// Generate produces n particles deterministically from seed: no I/O, no time
// dependency, identical output for identical inputs. The first round(n*0.2)
// particles form the core cluster, the rest the rings.
//
// Per-particle draw order is fixed (core: radius, speed, size; ring: band
// selector, radius, size; then angle offset and seed for all) so populations
// are reproducible across runs and platforms.
func Generate(n int, seed uint64, pal Palette) Population {
	if n <= 0 {
		return nil
	}

	rng := vmath.NewFastRand(seed)
	pop := make(Population, n)
	coreN := CoreCount(n)

	for i := range pop {
		p := &pop[i]
		if i < coreN {
			p.OrbitRadius = rng.Range(0, parameter.CoreRadiusMax)
			p.BaseSpeed = rng.Range(parameter.CoreSpeedMin, parameter.CoreSpeedMax)
			p.Size = rng.Range(parameter.CoreSizeMin, parameter.CoreSizeMax)
			p.Color = pal.Core
		} else {
			band := rng.Float64()
			switch {
			case band < parameter.RingInnerSelect:
				p.OrbitRadius = rng.Range(parameter.RingInnerRadiusMin, parameter.RingInnerRadiusMax)
			case band < parameter.RingGapSelect:
				p.OrbitRadius = rng.Range(parameter.RingGapRadiusMin, parameter.RingGapRadiusMax)
			default:
				p.OrbitRadius = rng.Range(parameter.RingOuterRadiusMin, parameter.RingOuterRadiusMax)
			}
			p.BaseSpeed = parameter.RingSpeed
			p.Size = rng.Range(parameter.RingSizeMin, parameter.RingSizeMax)

			// Gap-band particles land mid-gradient; kept as-is, the band is
			// too sparse to read as a color discontinuity
			t := (p.OrbitRadius - parameter.RingColorRadiusBase) / parameter.RingColorRadiusSpan
			p.Color = render.LerpRGB(pal.RingInner, pal.RingOuter, t)
		}

		p.AngleOffset = rng.Range(0, vmath.TwoPi)
		p.Seed = rng.Float64()
	}

	return pop
}

package swarm

import (
	"math"

	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/render"
)

// Particle holds the static attributes drawn once at population time.
// Position is never stored: it is recomputed every frame from these
// attributes, the elapsed time, and the expansion scalar, so the animation
// is restartable and trivially parallel.
type Particle struct {
	OrbitRadius float64
	BaseSpeed   float64
	Size        float64
	AngleOffset float64 // radians, [0, 2π)
	Seed        float64 // per-particle phase source, [0, 1)
	Color       render.RGB
}

// Population is the full particle set, core subset first, rings after
type Population []Particle

// CoreCount returns the size of the leading core subset for a population of n
func CoreCount(n int) int {
	return int(math.Round(float64(n) * parameter.CoreFraction))
}

// Core returns the central cluster subset
func (p Population) Core() Population {
	return p[:CoreCount(len(p))]
}

// Ring returns the banded ring subset
func (p Population) Ring() Population {
	return p[CoreCount(len(p)):]
}

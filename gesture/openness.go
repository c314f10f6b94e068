package gesture

import (
	"math"

	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

var fingertips = [...]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Openness reduces one frame to the raw hand-openness scalar: the mean
// Euclidean fingertip-to-wrist distance, remapped from the closed and open
// reference spreads onto [0, 1]. Stateless and idempotent; duplicate-frame
// suppression is the caller's concern.
func Openness(f Frame) float64 {
	w := f[Wrist]
	sum := 0.0
	for _, idx := range fingertips {
		sum += math.Hypot(f[idx].X-w.X, f[idx].Y-w.Y)
	}
	mean := sum / float64(len(fingertips))
	return vmath.Remap(mean, parameter.OpennessClosedRef, parameter.OpennessOpenRef)
}

// finger chain angles, fanned above the wrist in y-down image coordinates
var fingerAngles = [...]float64{-2.45, -2.05, -1.60, -1.15, -0.75}

// FrameForOpenness builds a synthetic hand whose fingertip spread makes
// Openness read the given value (clamped to [0,1]). Each finger is a straight
// ray from the wrist with joints at fixed fractions, tips exactly at the
// target spread. Inverse of the extractor by construction; used by the
// synthetic feed and by tests.
func FrameForOpenness(openness float64) Frame {
	spread := vmath.Lerp(parameter.OpennessClosedRef, parameter.OpennessOpenRef, vmath.Clamp01(openness))
	wrist := Point{X: 0.5, Y: 0.65}

	var f Frame
	f[Wrist] = wrist

	for finger, angle := range fingerAngles {
		dx, dy := math.Cos(angle), math.Sin(angle)
		base := 1 + finger*4
		for joint := 0; joint < 4; joint++ {
			frac := float64(joint+1) / 4.0
			f[base+joint] = Point{
				X: wrist.X + dx*spread*frac,
				Y: wrist.Y + dy*spread*frac,
			}
		}
	}

	return f
}

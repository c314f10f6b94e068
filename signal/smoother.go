package signal

import (
	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

// Smoother owns the driving signal: the single expansion scalar coupling
// gesture input to the motion model. A fresh reading pulls the value up or
// down through a one-sided exponential moving average; a fresh dropout decays
// it multiplicatively toward zero, so the field drifts back to calm when
// tracking is lost mid-gesture. Always clamped to [0, 1].
//
// Not goroutine-safe: the session owns it and mutates it from the tick
// goroutine only, publishing snapshots for readers.
type Smoother struct {
	expansion float64
}

func NewSmoother() *Smoother {
	return &Smoother{}
}

// Drive relaxes the signal toward a fresh raw reading, clamping the reading
// first so malformed extractor output cannot push the signal out of range
func (s *Smoother) Drive(reading float64) float64 {
	r := vmath.Clamp01(reading)
	s.expansion = vmath.Clamp01(s.expansion + parameter.SignalAttack*(r-s.expansion))
	return s.expansion
}

// Decay relaxes the signal toward zero on a fresh no-detection event
func (s *Smoother) Decay() float64 {
	s.expansion *= parameter.SignalDecay
	return s.expansion
}

// Reset returns the signal to zero; called when a session starts
func (s *Smoother) Reset() {
	s.expansion = 0
}

// Value returns the current expansion without transitioning
func (s *Smoother) Value() float64 {
	return s.expansion
}

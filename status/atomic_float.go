package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 behind atomic bit conversion.
// Zero value is ready to use and reads as 0.0.
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

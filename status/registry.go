package status

import "sync/atomic"

// Registry is the central telemetry facade. The session and feed sources
// cache metric pointers at construction; tick and decode loops then write
// directly to the atomics without touching the maps.
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns the number of registered metrics across both types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

package swarm

import (
	"runtime"
	"sync"

	"github.com/lixenwraith/orbital-swarm/vmath"
)

// EvalPositions evaluates the motion model for every particle into dst,
// chunked across worker goroutines. Particles are independent, so the result
// is identical for any worker count; workers <= 0 uses one per CPU.
// Evaluates min(len(dst), len(pop)) entries.
func EvalPositions(dst []vmath.Vec3, pop Population, t, expansion float64, workers int) {
	n := min(len(dst), len(pop))
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		evalRange(dst, pop, t, expansion, 0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			evalRange(dst, pop, t, expansion, lo, hi)
		}(start, end)
	}
	wg.Wait()
}

func evalRange(dst []vmath.Vec3, pop Population, t, expansion float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = Position(&pop[i], t, expansion)
	}
}

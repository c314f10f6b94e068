package swarm

import (
	"testing"

	"github.com/lixenwraith/orbital-swarm/vmath"
)

func TestEvalPositionsMatchesSequential(t *testing.T) {
	pop := Generate(5000, 42, DefaultPalette())

	want := make([]vmath.Vec3, len(pop))
	for i := range pop {
		want[i] = Position(&pop[i], 7.25, 0.9)
	}

	for _, workers := range []int{1, 2, 4, 8, 0} {
		got := make([]vmath.Vec3, len(pop))
		EvalPositions(got, pop, 7.25, 0.9, workers)

		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Expected workers=%d result to match sequential at index %d: %v vs %v", workers, i, got[i], want[i])
			}
		}
	}
}

func TestEvalPositionsShortBuffer(t *testing.T) {
	pop := Generate(100, 1, DefaultPalette())

	dst := make([]vmath.Vec3, 40)
	EvalPositions(dst, pop, 1.0, 0.2, 4)

	for i := range dst {
		if want := Position(&pop[i], 1.0, 0.2); dst[i] != want {
			t.Fatalf("Expected prefix evaluation at index %d to be %v, got %v", i, want, dst[i])
		}
	}
}

func TestEvalPositionsEmpty(t *testing.T) {
	// Must not spin up workers or panic on empty input
	EvalPositions(nil, nil, 0, 0, 4)
	EvalPositions(make([]vmath.Vec3, 10), nil, 0, 0, 4)
	EvalPositions(nil, Generate(10, 1, DefaultPalette()), 0, 0, 4)
}

func TestEvalPositionsMoreWorkersThanParticles(t *testing.T) {
	pop := Generate(3, 9, DefaultPalette())

	dst := make([]vmath.Vec3, 3)
	EvalPositions(dst, pop, 2.0, 0.5, 16)

	for i := range pop {
		if want := Position(&pop[i], 2.0, 0.5); dst[i] != want {
			t.Fatalf("Expected index %d to be %v, got %v", i, want, dst[i])
		}
	}
}

package status

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapCachedPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("session.ticks")
	b := r.Ints.Get("session.ticks")
	if a != b {
		t.Error("Expected repeated Get to return the same cached pointer")
	}

	a.Add(5)
	if b.Load() != 5 {
		t.Errorf("Expected write through one pointer to be visible through the other, got %d", b.Load())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("feed.samples").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := r.Ints.Get("feed.samples").Load(); got != 3200 {
		t.Errorf("Expected 3200 increments across goroutines, got %d", got)
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("zebra")
	r.Ints.Get("alpha")
	r.Ints.Get("mid")

	var keys []string
	r.Ints.Range(func(key string, _ *atomic.Int64) {
		keys = append(keys, key)
	})

	if len(keys) != 3 {
		t.Fatalf("Expected 3 metrics, got %d", len(keys))
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("Expected sorted iteration order, got %v", keys)
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat

	if f.Get() != 0 {
		t.Errorf("Expected zero value to read 0, got %v", f.Get())
	}

	f.Set(0.73)
	if f.Get() != 0.73 {
		t.Errorf("Expected 0.73 after Set, got %v", f.Get())
	}

	f.Set(-1.5)
	if f.Get() != -1.5 {
		t.Errorf("Expected -1.5 after Set, got %v", f.Get())
	}
}

func TestRegistryTotalCount(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("a")
	r.Ints.Get("b")
	r.Floats.Get("c")

	if got := r.TotalCount(); got != 3 {
		t.Errorf("Expected total count 3, got %d", got)
	}
}

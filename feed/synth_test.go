package feed

import (
	"testing"
	"time"

	"github.com/lixenwraith/orbital-swarm/gesture"
)

func TestSyntheticHandDeterministic(t *testing.T) {
	a := NewSyntheticHand(nil, 42, 30, 0.2)
	b := NewSyntheticHand(nil, 42, 30, 0.2)

	for ts := time.Duration(0); ts < 5*time.Second; ts += 137 * time.Millisecond {
		if a.SampleAt(ts) != b.SampleAt(ts) {
			t.Fatalf("Expected identical samples at %v for equal seeds", ts)
		}
	}
}

func TestSyntheticHandSeedVariation(t *testing.T) {
	a := NewSyntheticHand(nil, 1, 30, 0)
	b := NewSyntheticHand(nil, 2, 30, 0)

	differs := false
	for ts := time.Duration(0); ts < 5*time.Second; ts += 137 * time.Millisecond {
		if a.SampleAt(ts) != b.SampleAt(ts) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("Expected different seeds to produce different gestures")
	}
}

func TestSyntheticHandNoDropout(t *testing.T) {
	s := NewSyntheticHand(nil, 7, 30, 0)

	for i := 0; i < 200; i++ {
		ts := time.Duration(i) * 33 * time.Millisecond
		sample := s.SampleAt(ts)

		if sample.None {
			t.Fatalf("Expected no dropout at %v with dropout disabled", ts)
		}
		if sample.Timestamp != ts {
			t.Errorf("Expected timestamp %v, got %v", ts, sample.Timestamp)
		}

		openness := gesture.Openness(sample.Frame)
		if openness < 0 || openness > 1 {
			t.Errorf("Expected openness in [0, 1] at %v, got %v", ts, openness)
		}
	}
}

func TestSyntheticHandFullDropout(t *testing.T) {
	s := NewSyntheticHand(nil, 7, 30, 1)

	for i := 0; i < 100; i++ {
		ts := time.Duration(i) * 33 * time.Millisecond
		if sample := s.SampleAt(ts); !sample.None {
			t.Fatalf("Expected every sample to be a dropout at %v", ts)
		}
	}
}

func TestSyntheticHandDropoutMix(t *testing.T) {
	s := NewSyntheticHand(nil, 11, 30, 0.5)

	var frames, drops int
	for i := 0; i < 400; i++ {
		if s.SampleAt(time.Duration(i) * 33 * time.Millisecond).None {
			drops++
		} else {
			frames++
		}
	}

	if frames == 0 {
		t.Error("Expected some detected frames at 50% dropout")
	}
	if drops == 0 {
		t.Error("Expected some dropout windows at 50% dropout")
	}
}

func TestSyntheticHandLifecycle(t *testing.T) {
	mb := NewMailbox()
	s := NewSyntheticHand(mb, 3, 200, 0)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Second start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := mb.Latest(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for a produced sample")
		}
		time.Sleep(time.Millisecond)
	}

	s.Stop()
	s.Stop()
}

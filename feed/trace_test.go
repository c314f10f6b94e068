package feed

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/orbital-swarm/gesture"
)

type captureSink struct {
	mu      sync.Mutex
	samples []Sample
}

func (c *captureSink) Put(s Sample) {
	c.mu.Lock()
	c.samples = append(c.samples, s)
	c.mu.Unlock()
}

func (c *captureSink) snapshot() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sample(nil), c.samples...)
}

func traceFixture() []Sample {
	return []Sample{
		{Timestamp: 0, Frame: gesture.FrameForOpenness(0.1)},
		{Timestamp: 33 * time.Millisecond, Frame: gesture.FrameForOpenness(0.55)},
		{Timestamp: 66 * time.Millisecond, None: true},
		{Timestamp: 99 * time.Millisecond, Frame: gesture.FrameForOpenness(1.0)},
	}
}

func TestTraceRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, nil)

	want := traceFixture()
	for _, s := range want {
		rec.Put(s)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Trace round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorderPassthrough(t *testing.T) {
	var buf bytes.Buffer
	mb := NewMailbox()
	rec := NewRecorder(&buf, mb)

	rec.Put(Sample{Timestamp: 10 * time.Millisecond, None: true})

	got, ok := mb.Latest()
	if !ok {
		t.Fatal("Expected the sample to pass through to the downstream sink")
	}
	if got.Timestamp != 10*time.Millisecond || !got.None {
		t.Errorf("Expected passthrough of the recorded sample, got %+v", got)
	}
	if rec.Err() != nil {
		t.Errorf("Expected no recording error, got %v", rec.Err())
	}
}

func TestLoadTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gesture.jsonl")

	rec, err := CreateTrace(path, nil)
	if err != nil {
		t.Fatalf("CreateTrace failed: %v", err)
	}
	want := traceFixture()
	for _, s := range want {
		rec.Put(s)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got, err := LoadTrace(path)
	if err != nil {
		t.Fatalf("LoadTrace failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Loaded trace mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTraceMissingFile(t *testing.T) {
	if _, err := LoadTrace(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("Expected error for a missing trace file, got nil")
	}
}

func TestReadTraceMalformedLine(t *testing.T) {
	_, err := ReadTrace(strings.NewReader("{\"t_us\":0,\"none\":true}\nnot json\n"))
	if err == nil {
		t.Fatal("Expected error for malformed line, got nil")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected the error to name line 2, got %v", err)
	}
}

func TestReadTraceBadLandmarkIndex(t *testing.T) {
	if _, err := ReadTrace(strings.NewReader("{\"t_us\":0,\"pts\":[[99,0.5,0.5]]}\n")); err == nil {
		t.Error("Expected error for out-of-range landmark index, got nil")
	}
}

func TestReadTraceMissingRequiredLandmark(t *testing.T) {
	// Frame line with only a thumb tip, no wrist
	_, err := ReadTrace(strings.NewReader("{\"t_us\":0,\"pts\":[[4,0.5,0.5]]}\n"))
	if !errors.Is(err, gesture.ErrMissingLandmark) {
		t.Errorf("Expected ErrMissingLandmark, got %v", err)
	}
}

func TestReadTraceSkipsBlankLines(t *testing.T) {
	got, err := ReadTrace(strings.NewReader("\n{\"t_us\":5000,\"none\":true}\n\n"))
	if err != nil {
		t.Fatalf("ReadTrace failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 sample, got %d", len(got))
	}
	if got[0].Timestamp != 5*time.Millisecond || !got[0].None {
		t.Errorf("Expected a 5ms dropout sample, got %+v", got[0])
	}
}

func TestReplayDeliversAll(t *testing.T) {
	// Source timestamps start at 5ms; playback rebases them to zero
	src := []Sample{
		{Timestamp: 5 * time.Millisecond, Frame: gesture.FrameForOpenness(0.3)},
		{Timestamp: 15 * time.Millisecond, None: true},
		{Timestamp: 25 * time.Millisecond, Frame: gesture.FrameForOpenness(0.9)},
	}

	sink := &captureSink{}
	r := NewReplaySource(sink, src, 100, false)
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.snapshot()) < len(src) {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out: delivered %d of %d samples", len(sink.snapshot()), len(src))
		}
		time.Sleep(time.Millisecond)
	}
	r.Stop()

	got := sink.snapshot()
	wantTS := []time.Duration{0, 10 * time.Millisecond, 20 * time.Millisecond}
	for i, s := range got[:len(src)] {
		if s.Timestamp != wantTS[i] {
			t.Errorf("Sample %d: expected timestamp %v, got %v", i, wantTS[i], s.Timestamp)
		}
		if s.None != src[i].None {
			t.Errorf("Sample %d: expected none=%v, got none=%v", i, src[i].None, s.None)
		}
	}
}

func TestReplayLoopMonotonic(t *testing.T) {
	src := []Sample{
		{Timestamp: 0, None: true},
		{Timestamp: 10 * time.Millisecond, None: true},
	}

	sink := &captureSink{}
	r := NewReplaySource(sink, src, 50, true)
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.snapshot()) < 6 {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out: delivered %d samples", len(sink.snapshot()))
		}
		time.Sleep(time.Millisecond)
	}
	r.Stop()

	got := sink.snapshot()
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp <= got[i-1].Timestamp {
			t.Fatalf("Expected monotonic timestamps across loop passes, got %v then %v",
				got[i-1].Timestamp, got[i].Timestamp)
		}
	}
}

func TestReplayEmptyTrace(t *testing.T) {
	r := NewReplaySource(&captureSink{}, nil, 1, false)
	if err := r.Start(); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("Expected ErrEmptyTrace, got %v", err)
	}
}

func TestReplaySpeedClamped(t *testing.T) {
	sink := &captureSink{}
	r := NewReplaySource(sink, []Sample{{Timestamp: 0, None: true}}, -3, false)
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.snapshot()) < 1 {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for the single sample")
		}
		time.Sleep(time.Millisecond)
	}
	r.Stop()
}

package feed

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orbital-swarm/gesture"
)

// ErrEmptyTrace is returned when a replay is started with no samples
var ErrEmptyTrace = errors.New("trace holds no samples")

// traceLine is the JSONL record for one sample. Frames carry indexed
// points so sparse captures survive a round trip.
type traceLine struct {
	TUS  int64        `json:"t_us"`
	None bool         `json:"none,omitempty"`
	Pts  [][3]float64 `json:"pts,omitempty"`
}

// Recorder tees samples into a JSONL trace while passing them through to
// an optional downstream sink. The first write error latches and later
// samples still flow downstream, so a full disk never stalls a live feed.
type Recorder struct {
	next Sink

	mu  sync.Mutex
	bw  *bufio.Writer
	c   io.Closer
	err error
}

// NewRecorder wraps a writer. If the writer is also a closer it is closed
// by Close.
func NewRecorder(w io.Writer, next Sink) *Recorder {
	r := &Recorder{next: next, bw: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		r.c = c
	}
	return r
}

// CreateTrace opens a trace file for recording
func CreateTrace(path string, next Sink) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	return NewRecorder(f, next), nil
}

// Put appends one line and forwards the sample
func (r *Recorder) Put(s Sample) {
	r.mu.Lock()
	if r.err == nil {
		r.err = r.writeLine(s)
	}
	r.mu.Unlock()

	if r.next != nil {
		r.next.Put(s)
	}
}

func (r *Recorder) writeLine(s Sample) error {
	tl := traceLine{TUS: s.Timestamp.Microseconds(), None: s.None}
	if !s.None {
		tl.Pts = make([][3]float64, 0, gesture.LandmarkCount)
		for _, ip := range s.Frame.Points() {
			tl.Pts = append(tl.Pts, [3]float64{float64(ip.Index), ip.Point.X, ip.Point.Y})
		}
	}

	data, err := json.Marshal(tl)
	if err != nil {
		return err
	}
	if _, err := r.bw.Write(data); err != nil {
		return err
	}
	return r.bw.WriteByte('\n')
}

// Err returns the first write error, if any
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes buffered lines and closes the underlying file
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	flushErr := r.bw.Flush()
	if r.err == nil {
		r.err = flushErr
	}
	if r.c != nil {
		if err := r.c.Close(); err != nil && r.err == nil {
			r.err = err
		}
	}
	return r.err
}

// ReadTrace parses a JSONL trace into samples. Lines must carry valid
// landmark indices; blank lines are skipped.
func ReadTrace(r io.Reader) ([]Sample, error) {
	var samples []Sample

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var tl traceLine
		if err := json.Unmarshal(line, &tl); err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}

		s := Sample{Timestamp: time.Duration(tl.TUS) * time.Microsecond, None: tl.None}
		if !tl.None {
			pts := make([]gesture.IndexedPoint, len(tl.Pts))
			for i, p := range tl.Pts {
				pts[i] = gesture.IndexedPoint{Index: int(p[0]), Point: gesture.Point{X: p[1], Y: p[2]}}
			}
			frame, err := gesture.FrameFromPoints(pts)
			if err != nil {
				return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
			}
			s.Frame = frame
		}
		samples = append(samples, s)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return samples, nil
}

// LoadTrace reads a trace file from disk
func LoadTrace(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return ReadTrace(f)
}

// ReplaySource plays a recorded trace into a sink with the original
// pacing. Speed scales playback (2 is twice as fast); loop restarts the
// trace with timestamps shifted forward so they stay monotonic across
// passes and the session never mistakes a restart for a stale sample.
type ReplaySource struct {
	sink    Sink
	samples []Sample
	speed   float64
	loop    bool

	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewReplaySource(sink Sink, samples []Sample, speed float64, loop bool) *ReplaySource {
	if speed <= 0 {
		speed = 1
	}
	return &ReplaySource{
		sink:    sink,
		samples: samples,
		speed:   speed,
		loop:    loop,
		stopCh:  make(chan struct{}),
	}
}

// Start begins playback in the background
func (r *ReplaySource) Start() error {
	if len(r.samples) == 0 {
		return ErrEmptyTrace
	}
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}

	r.wg.Add(1)
	go r.run()
	return nil
}

// Stop halts playback and waits for the run loop to exit; idempotent
func (r *ReplaySource) Stop() {
	r.stopOnce.Do(func() {
		r.running.Store(false)
		close(r.stopCh)
		r.wg.Wait()
	})
}

func (r *ReplaySource) run() {
	defer r.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	first := r.samples[0].Timestamp
	span := r.samples[len(r.samples)-1].Timestamp - first

	// Gap inserted between loop passes, estimated from the trace cadence
	step := 33 * time.Millisecond
	if len(r.samples) > 1 && span > 0 {
		step = span / time.Duration(len(r.samples)-1)
	}

	start := time.Now()
	var base time.Duration

	for {
		for _, s := range r.samples {
			virtual := base + (s.Timestamp - first)

			deadline := start.Add(r.scale(virtual))
			if wait := time.Until(deadline); wait > 0 {
				timer.Reset(wait)
				select {
				case <-r.stopCh:
					return
				case <-timer.C:
				}
			}

			out := s
			out.Timestamp = virtual
			r.sink.Put(out)
		}

		if !r.loop {
			return
		}
		base += span + step
	}
}

func (r *ReplaySource) scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) / r.speed)
}

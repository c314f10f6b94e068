package feed

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/orbital-swarm/gesture"
	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/vmath"
)

// SyntheticHand produces plausible gesture samples without a camera: a
// Perlin-noise openness trajectory turned into geometrically consistent
// landmark frames. A second noise lane opens dropout windows (no-detection
// samples) so the decay path gets exercised too. Sample content is a pure
// function of the timestamp, so a fixed seed replays the same gesture.
type SyntheticHand struct {
	sink       Sink
	sampleRate int
	dropout    float64 // fraction of time spent in dropout windows, [0,1]
	noise      *perlin.Perlin

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

func NewSyntheticHand(sink Sink, seed int64, sampleRate int, dropout float64) *SyntheticHand {
	if sampleRate <= 0 {
		sampleRate = parameter.SynthSampleRate
	}
	return &SyntheticHand{
		sink:       sink,
		sampleRate: sampleRate,
		dropout:    vmath.Clamp01(dropout),
		noise:      perlin.NewPerlin(2, 2, 3, seed),
		stopChan:   make(chan struct{}),
	}
}

// SampleAt returns the sample this hand would produce at the given video
// timestamp. Exposed so tests and the replay tools can drive it directly.
func (s *SyntheticHand) SampleAt(ts time.Duration) Sample {
	t := ts.Seconds()

	if s.dropout > 0 {
		gate := (s.noise.Noise1D(t*parameter.SynthDropoutFreq+parameter.SynthDropoutLane) + 1) / 2
		if gate < s.dropout {
			return Sample{Timestamp: ts, None: true}
		}
	}

	openness := vmath.Clamp01(0.5 + s.noise.Noise1D(t*parameter.SynthOpennessFreq)*parameter.SynthOpennessSwing)
	return Sample{Timestamp: ts, Frame: gesture.FrameForOpenness(openness)}
}

// Start begins producing samples at the configured cadence
func (s *SyntheticHand) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	s.wg.Add(1)
	go s.loop()
	return nil
}

// Stop halts production and waits for the loop to exit; idempotent
func (s *SyntheticHand) Stop() {
	s.stopOnce.Do(func() {
		s.running.Store(false)
		close(s.stopChan)
		s.wg.Wait()
	})
}

func (s *SyntheticHand) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Second / time.Duration(s.sampleRate))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.sink.Put(s.SampleAt(now.Sub(start)))
		}
	}
}

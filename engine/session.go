package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orbital-swarm/feed"
	"github.com/lixenwraith/orbital-swarm/gesture"
	"github.com/lixenwraith/orbital-swarm/parameter"
	"github.com/lixenwraith/orbital-swarm/signal"
	"github.com/lixenwraith/orbital-swarm/status"
)

// Snapshot is the session state renderers consume each frame
type Snapshot struct {
	Expansion float64       // smoothed expansion, [0, 1]
	Elapsed   time.Duration // run time since Start
	Tick      uint64
}

// Session owns the expansion scalar. It polls the feed mailbox on a fixed
// tick, classifies the held sample, and applies exactly one smoother
// transition per tick:
//
//	no sample yet          -> nothing, the field idles contracted
//	same timestamp as last -> hold, detector output is stale
//	fresh no-detection     -> decay toward closed
//	fresh frame            -> drive toward the frame's openness
//
// The smoother is touched only from the session goroutine; renderers and
// audio read published snapshots.
type Session struct {
	clock    Clock
	mailbox  *feed.Mailbox
	smoother *signal.Smoother

	tickInterval time.Duration

	// Loop-goroutine state
	start         time.Time
	lastTimestamp time.Duration
	hasProcessed  bool

	snapshot  atomic.Pointer[Snapshot]
	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statTicks  *atomic.Int64
	statFrames *atomic.Int64
	statHolds  *atomic.Int64
	statDecays *atomic.Int64
	statValue  *status.AtomicFloat
}

// NewSession creates a session polling the mailbox at tickRate Hz
func NewSession(clock Clock, mailbox *feed.Mailbox, tickRate int, reg *status.Registry) *Session {
	if tickRate <= 0 {
		tickRate = parameter.SessionTickRate
	}

	s := &Session{
		clock:        clock,
		mailbox:      mailbox,
		smoother:     signal.NewSmoother(),
		tickInterval: time.Second / time.Duration(tickRate),
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get("session.ticks"),
		statFrames:   reg.Ints.Get("session.frames"),
		statHolds:    reg.Ints.Get("session.holds"),
		statDecays:   reg.Ints.Get("session.decays"),
		statValue:    reg.Floats.Get("session.expansion"),
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Start resets the expansion to closed and begins the tick loop
func (s *Session) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}

	s.smoother.Reset()
	s.start = s.clock.Now()
	s.lastTimestamp = 0
	s.hasProcessed = false
	s.snapshot.Store(&Snapshot{})

	s.wg.Add(1)
	go s.loop()
}

// Stop halts the tick loop and waits for it to exit; idempotent
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

// Snapshot returns the most recently published session state
func (s *Session) Snapshot() Snapshot {
	return *s.snapshot.Load()
}

// Expansion returns the published expansion scalar
func (s *Session) Expansion() float64 {
	return s.snapshot.Load().Expansion
}

func (s *Session) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	next := s.clock.Now().Add(s.tickInterval)

	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		now := s.clock.Now()
		if !now.Before(next) {
			s.processTick(now)

			next = next.Add(s.tickInterval)

			// Resynchronize after a long stall instead of replaying
			// every missed tick
			if now.Sub(next) > s.tickInterval*2 {
				next = now.Add(s.tickInterval)
			}
			now = s.clock.Now()
		}

		if sleep := next.Sub(now); sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-s.stopChan:
				return
			}
		}
	}
}

// processTick applies one smoother transition and publishes a snapshot
func (s *Session) processTick(now time.Time) {
	sample, ok := s.mailbox.Latest()
	if ok {
		if s.hasProcessed && sample.Timestamp == s.lastTimestamp {
			s.statHolds.Add(1)
		} else {
			s.lastTimestamp = sample.Timestamp
			s.hasProcessed = true

			if sample.None {
				s.smoother.Decay()
				s.statDecays.Add(1)
			} else {
				s.smoother.Drive(gesture.Openness(sample.Frame))
				s.statFrames.Add(1)
			}
		}
	}

	tick := s.tickCount.Add(1)
	e := s.smoother.Value()

	s.snapshot.Store(&Snapshot{
		Expansion: e,
		Elapsed:   now.Sub(s.start),
		Tick:      tick,
	})
	s.statTicks.Store(int64(tick))
	s.statValue.Set(e)
}

package feed

import (
	"sync"
	"time"

	"github.com/lixenwraith/orbital-swarm/gesture"
)

// Sample is one detector result: a timestamp plus either a landmark frame or
// nothing. Timestamps come from the producer's video clock and never move
// backwards; the session compares them to tell a fresh result from a stale
// one. None means detection ran and found no hand, which is a real event,
// not an error.
type Sample struct {
	Timestamp time.Duration
	Frame     gesture.Frame
	None      bool
}

// Sink receives every produced sample. The mailbox is the terminal sink; a
// recorder tees samples into a trace on the way through.
type Sink interface {
	Put(Sample)
}

// Mailbox is the single-slot handoff between a feed source and the session:
// the newest sample wins, nothing queues, nothing blocks. The session polls
// Latest on its own tick and never waits on detection.
type Mailbox struct {
	mu     sync.Mutex
	sample Sample
	filled bool
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Put replaces the held sample
func (m *Mailbox) Put(s Sample) {
	m.mu.Lock()
	m.sample = s
	m.filled = true
	m.mu.Unlock()
}

// Latest returns the most recent sample, ok false if none has arrived yet
func (m *Mailbox) Latest() (Sample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sample, m.filled
}

// Source produces detector samples into a sink. Implementations own their
// goroutines: Start is a no-op if already running, Stop is idempotent and
// waits for the production goroutine to exit.
type Source interface {
	Start() error
	Stop()
}

package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/orbital-swarm/gesture"
	"github.com/lixenwraith/orbital-swarm/status"
)

// Listener accepts landmark-feed producers on a TCP address and publishes
// decoded samples. One producer drives the field at a time: a new connection
// preempts the previous one, so a restarted detector just reconnects.
// Protocol violations close the offending connection and count an error;
// the session keeps running on whatever samples already arrived.
type Listener struct {
	addr string
	sink Sink

	listener net.Listener
	mu       sync.Mutex
	active   net.Conn

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	statConns  *atomic.Int64
	statFrames *atomic.Int64
	statEmpty  *atomic.Int64
	statErrors *atomic.Int64
}

func NewListener(addr string, sink Sink, reg *status.Registry) *Listener {
	return &Listener{
		addr:       addr,
		sink:       sink,
		stopCh:     make(chan struct{}),
		statConns:  reg.Ints.Get("feed.connections"),
		statFrames: reg.Ints.Get("feed.frames"),
		statEmpty:  reg.Ints.Get("feed.empty"),
		statErrors: reg.Ints.Get("feed.errors"),
	}
}

// Start binds the address and begins accepting producers
func (l *Listener) Start() error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		l.running.Store(false)
		return fmt.Errorf("listen %s: %w", l.addr, err)
	}
	l.listener = ln

	l.wg.Add(1)
	go l.acceptLoop()
	return nil
}

// Addr returns the bound address, useful when listening on port 0
func (l *Listener) Addr() net.Addr {
	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Stop closes the listener and any active producer, then waits; idempotent.
// A stopped listener is not restartable, create a new one.
func (l *Listener) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}

	close(l.stopCh)
	l.listener.Close()

	l.mu.Lock()
	if l.active != nil {
		l.active.Close()
	}
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Listener) acceptLoop() {
	defer l.wg.Done()

	for {
		conn, err := l.listener.Accept()
		if err != nil {
			select {
			case <-l.stopCh:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}

		l.statConns.Add(1)

		l.mu.Lock()
		if l.active != nil {
			l.active.Close()
		}
		l.active = conn
		l.mu.Unlock()

		l.wg.Add(1)
		go l.serve(conn)
	}
}

func (l *Listener) serve(conn net.Conn) {
	defer l.wg.Done()
	defer conn.Close()

	br := bufio.NewReader(conn)

	// Stream must open with a version-matched hello
	first, err := Decode(br)
	if err != nil {
		l.statErrors.Add(1)
		return
	}
	if err := CheckHello(first); err != nil {
		l.statErrors.Add(1)
		return
	}

	for {
		msg, err := Decode(br)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				l.statErrors.Add(1)
			}
			return
		}

		switch msg.Type {
		case MsgHandFrame:
			pts, err := DecodeFramePayload(msg.Payload)
			if err != nil {
				l.statErrors.Add(1)
				return
			}
			frame, err := gesture.FrameFromPoints(pts)
			if err != nil {
				l.statErrors.Add(1)
				return
			}
			l.sink.Put(Sample{Timestamp: msg.Timestamp, Frame: frame})
			l.statFrames.Add(1)

		case MsgEmpty:
			l.sink.Put(Sample{Timestamp: msg.Timestamp, None: true})
			l.statEmpty.Add(1)

		case MsgBye:
			return

		case MsgHello:
			// Repeated hello is harmless

		default:
			l.statErrors.Add(1)
			return
		}
	}
}

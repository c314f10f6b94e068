package feed

import (
	"bufio"
	"fmt"
	"net"
	"sync"
)

// StreamProducer is the sending end of the feed protocol. It dials a
// listening session and forwards every sample handed to it. It implements
// Sink so any local source can be pointed at a remote field unchanged.
//
// Write errors latch: the first failure is kept, later puts are dropped
// silently so a dead session does not stall the source loop.
type StreamProducer struct {
	mu   sync.Mutex
	conn net.Conn
	bw   *bufio.Writer
	seq  uint32
	err  error
}

// DialProducer connects to a session listener and performs the hello
// exchange. The returned producer is ready to receive samples.
func DialProducer(addr string) (*StreamProducer, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	p := &StreamProducer{
		conn: conn,
		bw:   bufio.NewWriter(conn),
	}

	if err := p.send(NewHelloMessage()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("hello: %w", err)
	}
	return p, nil
}

// Put encodes and sends one sample
func (p *StreamProducer) Put(s Sample) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return
	}

	var msg *Message
	if s.None {
		msg = NewEmptyMessage(p.seq, s.Timestamp)
	} else {
		var err error
		msg, err = NewFrameMessage(p.seq, s.Timestamp, s.Frame)
		if err != nil {
			p.err = err
			return
		}
	}
	p.seq++

	if err := msg.Encode(p.bw); err != nil {
		p.err = err
		return
	}
	p.err = p.bw.Flush()
}

// Err returns the first write error, if any
func (p *StreamProducer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close sends a bye and tears the connection down
func (p *StreamProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err == nil {
		if err := NewByeMessage(p.seq).Encode(p.bw); err == nil {
			p.bw.Flush()
		}
		p.seq++
	}
	return p.conn.Close()
}

func (p *StreamProducer) send(msg *Message) error {
	if err := msg.Encode(p.bw); err != nil {
		return err
	}
	return p.bw.Flush()
}

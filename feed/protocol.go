package feed

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/lixenwraith/orbital-swarm/gesture"
)

// MessageType identifies the semantic meaning of a message
type MessageType uint8

const (
	// MsgHello opens a producer stream; payload is the protocol version byte
	MsgHello MessageType = 0x01
	// MsgBye announces an orderly shutdown of the producer
	MsgBye MessageType = 0x02

	// MsgHandFrame carries one detected hand's landmark set
	MsgHandFrame MessageType = 0x10
	// MsgEmpty reports that detection ran on a fresh video frame and found no hand
	MsgEmpty MessageType = 0x11
)

// ProtocolVersion is negotiated in MsgHello; mismatches close the stream
const ProtocolVersion = 1

// Header precedes every message on the wire
// Fixed 18 bytes: [Magic:2][Type:1][Flags:1][Seq:4][TimestampMicros:8][Len:2]
const HeaderSize = 18

// Magic marks the start of every header, catching desynchronized streams early
const Magic = 0x5357 // "SW"

// Header flags
const (
	FlagNone uint8 = 0x00
)

// MaxPoints bounds the landmark count a frame may carry
const MaxPoints = 32

// MaxPayloadSize bounds payload allocation per message
const MaxPayloadSize = 4 + MaxPoints*9

var (
	ErrBadMagic   = errors.New("bad magic")
	ErrOversized  = errors.New("payload exceeds maximum size")
	ErrBadVersion = errors.New("unsupported protocol version")
)

// Message is one framed unit on the landmark feed
type Message struct {
	Type      MessageType
	Flags     uint8
	Seq       uint32
	Timestamp time.Duration // producer video clock
	Payload   []byte
}

// Encode writes the message with its fixed header:
// [Magic:2][Type:1][Flags:1][Seq:4][TimestampMicros:8][Len:2]
func (m *Message) Encode(w io.Writer) error {
	payloadLen := len(m.Payload)
	if payloadLen > MaxPayloadSize {
		return ErrOversized
	}

	header := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(header[0:2], Magic)
	header[2] = byte(m.Type)
	header[3] = m.Flags
	binary.BigEndian.PutUint32(header[4:8], m.Seq)
	binary.BigEndian.PutUint64(header[8:16], uint64(m.Timestamp.Microseconds()))
	binary.BigEndian.PutUint16(header[16:18], uint16(payloadLen))

	if _, err := w.Write(header); err != nil {
		return err
	}
	if payloadLen > 0 {
		if _, err := w.Write(m.Payload); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads one message from the stream
func Decode(r io.Reader) (*Message, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	if binary.BigEndian.Uint16(header[0:2]) != Magic {
		return nil, ErrBadMagic
	}

	payloadLen := binary.BigEndian.Uint16(header[16:18])
	if int(payloadLen) > MaxPayloadSize {
		return nil, ErrOversized
	}

	m := &Message{
		Type:      MessageType(header[2]),
		Flags:     header[3],
		Seq:       binary.BigEndian.Uint32(header[4:8]),
		Timestamp: time.Duration(binary.BigEndian.Uint64(header[8:16])) * time.Microsecond,
	}

	if payloadLen > 0 {
		m.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, m.Payload); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// EncodeFramePayload packs landmark points: count byte, then per point the
// landmark index and two float32 coordinates
func EncodeFramePayload(pts []gesture.IndexedPoint) ([]byte, error) {
	if len(pts) > MaxPoints {
		return nil, fmt.Errorf("%w: %d points", ErrOversized, len(pts))
	}

	buf := make([]byte, 1+len(pts)*9)
	buf[0] = byte(len(pts))
	off := 1
	for _, ip := range pts {
		if ip.Index < 0 || ip.Index > 255 {
			return nil, fmt.Errorf("landmark index %d does not fit the wire format", ip.Index)
		}
		buf[off] = byte(ip.Index)
		binary.BigEndian.PutUint32(buf[off+1:off+5], floatBits(ip.Point.X))
		binary.BigEndian.PutUint32(buf[off+5:off+9], floatBits(ip.Point.Y))
		off += 9
	}
	return buf, nil
}

// DecodeFramePayload unpacks landmark points from a MsgHandFrame payload
func DecodeFramePayload(payload []byte) ([]gesture.IndexedPoint, error) {
	if len(payload) < 1 {
		return nil, errors.New("empty frame payload")
	}
	count := int(payload[0])
	if count > MaxPoints {
		return nil, fmt.Errorf("%w: %d points", ErrOversized, count)
	}
	if len(payload) != 1+count*9 {
		return nil, fmt.Errorf("frame payload length %d does not match %d points", len(payload), count)
	}

	pts := make([]gesture.IndexedPoint, count)
	off := 1
	for i := range pts {
		pts[i] = gesture.IndexedPoint{
			Index: int(payload[off]),
			Point: gesture.Point{
				X: bitsFloat(binary.BigEndian.Uint32(payload[off+1 : off+5])),
				Y: bitsFloat(binary.BigEndian.Uint32(payload[off+5 : off+9])),
			},
		}
		off += 9
	}
	return pts, nil
}

// Coordinates travel as float32, plenty for normalized image positions
func floatBits(x float64) uint32 {
	return math.Float32bits(float32(x))
}

func bitsFloat(b uint32) float64 {
	return float64(math.Float32frombits(b))
}

// CheckHello validates a stream-opening message
func CheckHello(m *Message) error {
	if m.Type != MsgHello {
		return fmt.Errorf("expected hello, got message type 0x%02x", uint8(m.Type))
	}
	if len(m.Payload) < 1 {
		return errors.New("hello carries no version byte")
	}
	if m.Payload[0] != ProtocolVersion {
		return fmt.Errorf("%w: %d", ErrBadVersion, m.Payload[0])
	}
	return nil
}

// NewHelloMessage opens a stream at the current protocol version
func NewHelloMessage() *Message {
	return &Message{Type: MsgHello, Payload: []byte{ProtocolVersion}}
}

// NewFrameMessage frames one detected hand
func NewFrameMessage(seq uint32, ts time.Duration, f gesture.Frame) (*Message, error) {
	payload, err := EncodeFramePayload(f.Points())
	if err != nil {
		return nil, err
	}
	return &Message{Type: MsgHandFrame, Seq: seq, Timestamp: ts, Payload: payload}, nil
}

// NewEmptyMessage reports a fresh no-detection result
func NewEmptyMessage(seq uint32, ts time.Duration) *Message {
	return &Message{Type: MsgEmpty, Seq: seq, Timestamp: ts}
}

// NewByeMessage announces a clean producer shutdown
func NewByeMessage(seq uint32) *Message {
	return &Message{Type: MsgBye, Seq: seq}
}

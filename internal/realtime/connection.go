package realtime

import (
	"errors"
	"sync"
)

// Conn is a single live push-capable connection. Implementations must make
// Send safe for concurrent use; a Send error marks the connection dead and
// the registry evicts it on that send attempt (lazy eviction).
type Conn interface {
	// Send writes one marshaled frame to the connection.
	Send(frame []byte) error

	// Close releases the connection. Safe to call more than once.
	Close() error
}

// ErrConnClosed is returned by Send on a closed connection.
var ErrConnClosed = errors.New("connection closed")

// ErrSendBufferFull is returned when the consumer stopped draining frames;
// the registry treats it like any other dead connection.
var ErrSendBufferFull = errors.New("send buffer full")

// ChannelConn is a Conn backed by a buffered channel. The transport adapter
// (SSE handler) drains Frames and writes them to the wire; tests drain it
// directly. Each ChannelConn represents one physical connection, so two
// instances for the same recipient never compare equal.
type ChannelConn struct {
	frames chan []byte

	mu     sync.Mutex
	closed bool
}

// NewChannelConn creates a connection with the given frame buffer size.
func NewChannelConn(buffer int) *ChannelConn {
	if buffer <= 0 {
		buffer = 16
	}
	return &ChannelConn{frames: make(chan []byte, buffer)}
}

// Frames returns the channel the transport drains.
func (c *ChannelConn) Frames() <-chan []byte {
	return c.frames
}

// Send enqueues a frame without blocking. A full buffer fails the send so a
// stalled consumer cannot stall fan-out to other connections.
func (c *ChannelConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}

	select {
	case c.frames <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close marks the connection closed and releases the frame channel.
func (c *ChannelConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.frames)
	return nil
}

// Package core holds the transport-facing primitives shared by the
// controller and the websocket adapter.
package core

import "errors"

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// Frame is one encoded message on the wire.
type Frame []byte

// ConnID identifies a transport connection. It is minted by the adapter and
// never reused.
type ConnID string

// SignalConnection abstracts the per-connection messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues f without blocking. It fails with ErrBackpressure when
	// the queue is full and ErrConnectionClosed after Close.
	TrySend(Frame) error
	Close()
}

package app

import "github.com/dkeye/Dicecells/internal/domain"

// EventSink receives committed room events after clients have been notified.
// Publish is called with the room lock held, so implementations must return
// without waiting on I/O.
type EventSink interface {
	Publish(room domain.RoomID, event string, payload any)
}

type NopSink struct{}

func (NopSink) Publish(domain.RoomID, string, any) {}

// Package events mirrors committed room events onto NATS subjects.
package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Event is the JSON body of every published message.
type Event struct {
	RoomID  domain.RoomID `json:"roomId"`
	Event   string        `json:"event"`
	Payload any           `json:"payload,omitempty"`
	At      time.Time     `json:"at"`
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// queueSize bounds the events waiting for the publisher goroutine.
const queueSize = 256

type outMsg struct {
	subject string
	data    []byte
}

// NATSSink publishes to <prefix>.<roomId>.<event>. Publish only encodes and
// enqueues; a single goroutine talks to NATS. When the queue is full the
// event is dropped and logged.
type NATSSink struct {
	pub    publisher
	conn   *nats.Conn
	prefix string
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan outMsg
	done   chan struct{}
}

func Dial(url, prefix string) (*NATSSink, error) {
	conn, err := nats.Connect(
		url,
		nats.Name("dicecells"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Str("module", "events").Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("module", "events").Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	log.Info().Str("module", "events").Str("url", url).Str("prefix", prefix).Msg("nats connected")
	s := newSink(conn, prefix)
	s.conn = conn
	return s, nil
}

func newSink(pub publisher, prefix string) *NATSSink {
	s := &NATSSink{
		pub:    pub,
		prefix: prefix,
		now:    time.Now,
		queue:  make(chan outMsg, queueSize),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *NATSSink) run() {
	defer close(s.done)
	for m := range s.queue {
		if err := s.pub.Publish(m.subject, m.data); err != nil {
			log.Warn().Err(err).Str("module", "events").Str("subject", m.subject).Msg("publish failed")
		}
	}
}

// Subject returns the subject a room event is published on.
func Subject(prefix string, room domain.RoomID, event string) string {
	return fmt.Sprintf("%s.%s.%s", prefix, room, event)
}

func (s *NATSSink) Publish(room domain.RoomID, event string, payload any) {
	data, err := json.Marshal(Event{RoomID: room, Event: event, Payload: payload, At: s.now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("module", "events").Str("room_id", string(room)).Str("event", event).Msg("encode event")
		return
	}
	subject := Subject(s.prefix, room, event)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.queue <- outMsg{subject: subject, data: data}:
	default:
		log.Warn().Str("module", "events").Str("subject", subject).Msg("event queue full, dropping")
	}
}

// Close publishes what is queued, then drains and closes the connection.
// Later calls to Publish are ignored.
func (s *NATSSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	if s.conn == nil {
		return
	}
	if err := s.conn.Drain(); err != nil {
		log.Warn().Err(err).Str("module", "events").Msg("nats drain")
		s.conn.Close()
	}
}

// Package orch is the session controller. It turns client intents into
// registry mutations, enforces turn order and leadership, and fans the
// resulting views out to room members.
package orch

import (
	"context"

	"github.com/dkeye/Dicecells/internal/app"
	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Rooms   *app.RoomRegistry
	Gateway *app.Gateway
	Policy  app.Policy
	Events  app.EventSink
}

// Connect registers a fresh connection and greets it with its id, which is
// also its player id.
func (o *Orchestrator) Connect(id core.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	o.Gateway.Bind(id, conn, cancel)
	o.sendTo(id, core.MsgHello, HelloPayload{ID: app.PlayerOf(id)})
}

// Disconnect forgets the connection and leaves every room it was in.
func (o *Orchestrator) Disconnect(id core.ConnID) {
	for _, room := range o.Gateway.Unbind(id) {
		o.leave(id, room, false)
	}
}

// broadcast queues one frame for every listed player still connected.
// Callers hold the room lock, so frames of one room go out in commit order.
func (o *Orchestrator) broadcast(room domain.RoomID, players []domain.PlayerID, msgType string, payload any) {
	f, err := core.Encode(msgType, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("type", msgType).Msg("encode failed")
		return
	}
	res := core.Fanout(o.Gateway.Targets(players), f)
	for _, slow := range res.Dropped {
		o.onSlow(room, slow)
	}
}

func (o *Orchestrator) sendTo(id core.ConnID, msgType string, payload any) {
	conn, ok := o.Gateway.Conn(id)
	if !ok {
		return
	}
	f, err := core.Encode(msgType, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("type", msgType).Msg("encode failed")
		return
	}
	if err := conn.TrySend(f); err != nil {
		o.onSlow("", id)
	}
}

func (o *Orchestrator) onSlow(room domain.RoomID, id core.ConnID) {
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(room, id) {
	case app.KickMember:
		log.Warn().Str("module", "orch").Str("conn", string(id)).Str("room_id", string(room)).Msg("kicking slow connection")
		o.Gateway.Cancel(id)
	case app.NoAction:
	}
}

func (o *Orchestrator) publish(room domain.RoomID, event string, payload any) {
	if o.Events != nil {
		o.Events.Publish(room, event, payload)
	}
}

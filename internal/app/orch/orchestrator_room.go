package orch

import (
	"github.com/dkeye/Dicecells/internal/app"
	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/rs/zerolog/log"
)

const eventRoomDestroyed = "roomDestroyed"

func (o *Orchestrator) CreateRoom(conn core.ConnID, maxPlayers int, password, username string) {
	attached := true
	v, err := o.Rooms.Create(app.PlayerOf(conn), username, maxPlayers, password, func(v domain.RoomView) {
		attached = o.Gateway.Attach(conn, v.ID)
		o.sendTo(conn, core.MsgRoomCreated, RoomCreatedPayload{RoomID: v.ID, Room: v})
		o.publish(v.ID, core.MsgRoomCreated, v)
	})
	if err != nil {
		o.reject(conn, core.MsgCreateRoom, err)
		return
	}
	if !attached {
		// The connection went away while the room was being created.
		o.leave(conn, v.ID, false)
	}
}

func (o *Orchestrator) JoinRoom(conn core.ConnID, id domain.RoomID, password, username string) {
	attached := true
	_, err := o.Rooms.Join(id, app.PlayerOf(conn), username, password, func(v domain.RoomView) {
		attached = o.Gateway.Attach(conn, v.ID)
		o.broadcast(v.ID, v.Recipients(), core.MsgPlayerJoined, RoomPayload{Room: v})
		o.publish(v.ID, core.MsgPlayerJoined, v)
	})
	if err != nil {
		o.reject(conn, core.MsgJoinRoom, err)
		return
	}
	if !attached {
		o.leave(conn, id, false)
	}
}

// LeaveRoom removes the connection from one room without disconnecting it.
func (o *Orchestrator) LeaveRoom(conn core.ConnID, id domain.RoomID) {
	if !o.Gateway.InRoom(conn, id) {
		o.drop(conn, id, core.MsgLeaveRoom, ErrNotMember)
		return
	}
	o.leave(conn, id, true)
}

func (o *Orchestrator) ToggleReady(conn core.ConnID, id domain.RoomID) {
	_, ok, err := o.Rooms.ToggleReady(id, app.PlayerOf(conn), func(v domain.RoomView) {
		o.broadcast(v.ID, v.Recipients(), core.MsgRoomUpdated, RoomPayload{Room: v})
		o.publish(v.ID, core.MsgRoomUpdated, v)
	})
	switch {
	case err != nil:
		o.drop(conn, id, core.MsgToggleReady, err)
	case !ok:
		o.drop(conn, id, core.MsgToggleReady, ErrNotMember)
	}
}

func (o *Orchestrator) leave(conn core.ConnID, id domain.RoomID, notifyLeaver bool) {
	o.Gateway.Detach(conn, id)
	_, err := o.Rooms.Leave(id, app.PlayerOf(conn), func(res app.LeaveResult) {
		if notifyLeaver {
			o.sendTo(conn, core.MsgRoomLeft, RoomLeftPayload{RoomID: id})
		}
		if res.Destroyed {
			o.publish(id, eventRoomDestroyed, nil)
			return
		}
		members := res.View.Recipients()
		o.broadcast(id, members, core.MsgPlayerLeft, RoomPayload{Room: res.View})
		o.publish(id, core.MsgPlayerLeft, res.View)
		if res.View.GameState != nil {
			o.broadcast(id, members, core.MsgGameStateUpdated, stateUpdate(*res.View.GameState))
		}
	})
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(conn)).Str("room_id", string(id)).Str("reason", reason(err)).Msg("leave skipped")
	}
}

// reject reports a failed create or join to the requester only.
func (o *Orchestrator) reject(conn core.ConnID, intent string, err error) {
	msg := domain.UserMessage(err)
	log.Info().Err(err).Str("module", "orch").Str("conn", string(conn)).Str("intent", intent).Str("message", msg).Msg("request rejected")
	o.sendTo(conn, core.MsgError, ErrorPayload{Message: msg})
}

// drop logs an intent that is ignored without telling the client.
func (o *Orchestrator) drop(conn core.ConnID, id domain.RoomID, intent string, err error) {
	ev := log.Debug()
	if reason(err) == "internal" {
		ev = log.Warn()
	}
	ev.Err(err).Str("module", "orch").Str("conn", string(conn)).Str("room_id", string(id)).Str("intent", intent).Str("reason", reason(err)).Msg("intent dropped")
}

package signal

import (
	"encoding/json"

	"github.com/dkeye/Dicecells/internal/app/orch"
	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/rs/zerolog/log"
)

type createRoomPayload struct {
	MaxPlayers int    `json:"maxPlayers"`
	Password   string `json:"password"`
	Username   string `json:"username"`
}

type joinRoomPayload struct {
	RoomID   domain.RoomID `json:"roomId"`
	Password string        `json:"password"`
	Username string        `json:"username"`
}

type roomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

func (ctl *SignalWSController) handleCreateRoom(id core.ConnID, conn *WsSignalConn, data json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.badPayload(id, conn, core.MsgCreateRoom, err)
		return
	}
	ctl.Orch.CreateRoom(id, p.MaxPlayers, p.Password, p.Username)
}

func (ctl *SignalWSController) handleJoinRoom(id core.ConnID, conn *WsSignalConn, data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.badPayload(id, conn, core.MsgJoinRoom, err)
		return
	}
	ctl.Orch.JoinRoom(id, p.RoomID, p.Password, p.Username)
}

func (ctl *SignalWSController) handleLeaveRoom(id core.ConnID, data json.RawMessage) {
	if p, ok := decodeRoom(id, core.MsgLeaveRoom, data); ok {
		ctl.Orch.LeaveRoom(id, p.RoomID)
	}
}

func (ctl *SignalWSController) handleToggleReady(id core.ConnID, data json.RawMessage) {
	if p, ok := decodeRoom(id, core.MsgToggleReady, data); ok {
		ctl.Orch.ToggleReady(id, p.RoomID)
	}
}

func decodeRoom(id core.ConnID, intent string, data json.RawMessage) (roomPayload, bool) {
	var p roomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Str("intent", intent).Str("reason", "bad_payload").Msg("intent dropped")
		return p, false
	}
	return p, true
}

// badPayload answers a malformed create or join the way a rejected one is
// answered.
func (ctl *SignalWSController) badPayload(id core.ConnID, conn *WsSignalConn, intent string, err error) {
	log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Str("intent", intent).Msg("bad payload")
	ctl.send(conn, core.MsgError, orch.ErrorPayload{Message: domain.UserMessage(domain.ErrInvalidArgument)})
}

package signal

import (
	"encoding/json"

	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/dkeye/Dicecells/internal/game"
	"github.com/rs/zerolog/log"
)

type gameActionPayload struct {
	RoomID domain.RoomID   `json:"roomId"`
	Action game.ActionKind `json:"action"`
	Data   struct {
		Value        int `json:"value"`
		TargetPlayer int `json:"targetPlayer"`
		TargetCell   int `json:"targetCell"`
		SourceCell   int `json:"sourceCell"`
	} `json:"data"`
}

func (p gameActionPayload) action() game.Action {
	return game.Action{
		Kind:         p.Action,
		Value:        p.Data.Value,
		TargetPlayer: p.Data.TargetPlayer,
		TargetCell:   p.Data.TargetCell,
		SourceCell:   p.Data.SourceCell,
	}
}

func (ctl *SignalWSController) handleStartGame(id core.ConnID, data json.RawMessage) {
	if p, ok := decodeRoom(id, core.MsgStartGame, data); ok {
		ctl.Orch.StartGame(id, p.RoomID)
	}
}

func (ctl *SignalWSController) handleGameAction(id core.ConnID, data json.RawMessage) {
	var p gameActionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Str("intent", core.MsgGameAction).Str("reason", "bad_payload").Msg("intent dropped")
		return
	}
	ctl.Orch.GameAction(id, p.RoomID, p.action())
}

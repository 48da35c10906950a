package orch

import (
	"fmt"

	"github.com/dkeye/Dicecells/internal/app"
	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/dkeye/Dicecells/internal/game"
	"github.com/rs/zerolog/log"
)

// StartGame freezes the lobby into a game when the leader asks and every
// player is ready.
func (o *Orchestrator) StartGame(conn core.ConnID, id domain.RoomID) {
	player := app.PlayerOf(conn)
	err := o.Rooms.Update(id, func(r *domain.Room) error {
		switch {
		case !r.Has(player):
			return ErrNotMember
		case r.Leader != player:
			return ErrNotLeader
		case r.Started:
			return domain.ErrAlreadyStarted
		case len(r.Players) < domain.MinPlayers:
			return fmt.Errorf("%w: %d of %d players", ErrNotReady, len(r.Players), domain.MinPlayers)
		case !r.AllReady():
			return ErrNotReady
		}

		seats := make([]game.Seat, len(r.Players))
		for i, p := range r.Players {
			seats[i] = game.Seat{ID: string(p.ID), Username: p.Username}
		}
		st := game.NewState(seats)
		r.Started = true
		r.Game = &st

		log.Info().Str("module", "orch").Str("room_id", string(id)).Int("players", len(seats)).Msg("game started")
		o.broadcast(id, members(r), core.MsgGameStarted, GameStartedPayload{GameState: st.Clone()})
		o.publish(id, core.MsgGameStarted, st.Clone())
		return nil
	})
	if err != nil {
		o.drop(conn, id, core.MsgStartGame, err)
	}
}

// GameAction applies a move for the player whose turn it is.
func (o *Orchestrator) GameAction(conn core.ConnID, id domain.RoomID, a game.Action) {
	player := app.PlayerOf(conn)
	err := o.Rooms.Update(id, func(r *domain.Room) error {
		if !r.Started || r.Game == nil {
			return ErrNotStarted
		}
		cur, ok := r.Game.Current()
		if !ok || cur.Eliminated || cur.ID != string(player) {
			return ErrNotYourTurn
		}
		next, err := game.Apply(*r.Game, a)
		if err != nil {
			return err
		}
		r.Game = &next

		payload := stateUpdate(next.Clone())
		if payload.Winner != "" {
			log.Info().Str("module", "orch").Str("room_id", string(id)).Str("winner", payload.Winner).Msg("game won")
		}
		o.broadcast(id, members(r), core.MsgGameStateUpdated, payload)
		o.publish(id, core.MsgGameStateUpdated, payload)
		return nil
	})
	if err != nil {
		o.drop(conn, id, core.MsgGameAction, err)
	}
}

func members(r *domain.Room) []domain.PlayerID {
	out := make([]domain.PlayerID, len(r.Players))
	for i, p := range r.Players {
		out[i] = p.ID
	}
	return out
}

package orch

import (
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/dkeye/Dicecells/internal/game"
)

type HelloPayload struct {
	ID domain.PlayerID `json:"id"`
}

type RoomCreatedPayload struct {
	RoomID domain.RoomID   `json:"roomId"`
	Room   domain.RoomView `json:"room"`
}

type RoomPayload struct {
	Room domain.RoomView `json:"room"`
}

type RoomLeftPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

type GameStartedPayload struct {
	GameState game.State `json:"gameState"`
}

// GameStatePayload carries the derived counters clients need to detect the
// end of the game. Winner is set only once a single player remains.
type GameStatePayload struct {
	GameState       game.State `json:"gameState"`
	EliminatedCount int        `json:"eliminatedCount"`
	Winner          string     `json:"winner,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func stateUpdate(s game.State) GameStatePayload {
	p := GameStatePayload{GameState: s, EliminatedCount: s.EliminatedCount()}
	if w, ok := s.Winner(); ok {
		p.Winner = w.ID
	}
	return p
}

package domain

import (
	"slices"

	"github.com/dkeye/Dicecells/internal/game"
)

// RoomID is a 6-digit numeric string, unique among live rooms.
type RoomID string

// MinPlayers is the lobby size required before a game can start.
const MinPlayers = 2

type LobbyPlayer struct {
	ID       PlayerID `json:"id"`
	Username string   `json:"username"`
	Ready    bool     `json:"ready"`
	IsLeader bool     `json:"isLeader"`
}

// Room is the authoritative record kept by the registry. It is only ever
// touched while the registry holds the room's lock.
type Room struct {
	ID         RoomID
	Leader     PlayerID
	Password   string
	MaxPlayers int
	Players    []LobbyPlayer
	Started    bool
	Game       *game.State
}

// RoomView is a detached snapshot of a room, safe to serialise and hand to
// clients. The password is never part of it.
type RoomView struct {
	ID          RoomID        `json:"id"`
	Leader      PlayerID      `json:"leader"`
	HasPassword bool          `json:"hasPassword"`
	MaxPlayers  int           `json:"maxPlayers"`
	Players     []LobbyPlayer `json:"players"`
	Started     bool          `json:"started"`
	GameState   *game.State   `json:"gameState"`
}

// RoomSummary is the listing entry for a room.
type RoomSummary struct {
	ID          RoomID `json:"id"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Started     bool   `json:"started"`
	HasPassword bool   `json:"hasPassword"`
}

func (r *Room) IndexOf(id PlayerID) int {
	return slices.IndexFunc(r.Players, func(p LobbyPlayer) bool { return p.ID == id })
}

func (r *Room) Has(id PlayerID) bool { return r.IndexOf(id) >= 0 }

func (r *Room) Full() bool { return len(r.Players) >= r.MaxPlayers }

func (r *Room) AllReady() bool {
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// CheckPassword reports whether password opens the room. A room without a
// password accepts anything.
func (r *Room) CheckPassword(password string) bool {
	return r.Password == "" || r.Password == password
}

func (r *Room) View() RoomView {
	v := RoomView{
		ID:          r.ID,
		Leader:      r.Leader,
		HasPassword: r.Password != "",
		MaxPlayers:  r.MaxPlayers,
		Players:     slices.Clone(r.Players),
		Started:     r.Started,
	}
	if v.Players == nil {
		v.Players = []LobbyPlayer{}
	}
	if r.Game != nil {
		gs := r.Game.Clone()
		v.GameState = &gs
	}
	return v
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:          r.ID,
		Players:     len(r.Players),
		MaxPlayers:  r.MaxPlayers,
		Started:     r.Started,
		HasPassword: r.Password != "",
	}
}

// Recipients returns the ids of every member, in lobby order.
func (v RoomView) Recipients() []PlayerID {
	out := make([]PlayerID, 0, len(v.Players))
	for _, p := range v.Players {
		out = append(out, p.ID)
	}
	return out
}

// Package app owns the shared server state: the room registry, the
// connection gateway and the policies applied to them.
package app

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/dkeye/Dicecells/internal/game"
	"github.com/rs/zerolog/log"
)

// Commit runs after a successful mutation while the room is still locked.
// Whatever it queues for delivery is ordered with respect to every other
// mutation of the same room.
type Commit func(v domain.RoomView)

type roomEntry struct {
	mu      sync.Mutex
	room    *domain.Room
	removed bool
}

// RoomRegistry owns every live room. Each room has its own lock; a mutation
// holds it from validation through Commit. No operation locks two rooms.
type RoomRegistry struct {
	mu         sync.RWMutex
	rooms      map[domain.RoomID]*roomEntry
	maxPlayers int
	newID      func() domain.RoomID
}

type RegistryOption func(*RoomRegistry)

// WithIDSource replaces the random 6-digit id generator.
func WithIDSource(fn func() domain.RoomID) RegistryOption {
	return func(r *RoomRegistry) { r.newID = fn }
}

// NewRoomRegistry creates an empty registry. maxPlayers caps the size a
// client may ask for when creating a room.
func NewRoomRegistry(maxPlayers int, opts ...RegistryOption) *RoomRegistry {
	r := &RoomRegistry{
		rooms:      make(map[domain.RoomID]*roomEntry),
		maxPlayers: maxPlayers,
		newID:      randomRoomID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func randomRoomID() domain.RoomID {
	return domain.RoomID(fmt.Sprintf("%06d", 100000+rand.Intn(900000)))
}

// LeaveResult describes the room after a member left it.
type LeaveResult struct {
	View      domain.RoomView
	Destroyed bool
	NewLeader domain.PlayerID
}

// Create registers a new room with creator as its only, ready, leader.
func (r *RoomRegistry) Create(creator domain.PlayerID, username string, maxPlayers int, password string, commit Commit) (domain.RoomView, error) {
	name, err := domain.NormalizeUsername(username)
	if err != nil {
		return domain.RoomView{}, err
	}
	if maxPlayers < domain.MinPlayers || maxPlayers > r.maxPlayers {
		return domain.RoomView{}, fmt.Errorf("%w: max players must be within %d-%d", domain.ErrInvalidArgument, domain.MinPlayers, r.maxPlayers)
	}

	e := &roomEntry{}
	e.mu.Lock()
	defer e.mu.Unlock()

	r.mu.Lock()
	id := r.newID()
	for {
		if _, taken := r.rooms[id]; !taken {
			break
		}
		id = r.newID()
	}
	e.room = &domain.Room{
		ID:         id,
		Leader:     creator,
		Password:   password,
		MaxPlayers: maxPlayers,
		Players: []domain.LobbyPlayer{{
			ID:       creator,
			Username: name,
			Ready:    true,
			IsLeader: true,
		}},
	}
	r.rooms[id] = e
	r.mu.Unlock()

	log.Info().Str("module", "app.rooms").Str("room_id", string(id)).Str("leader", string(creator)).Int("max_players", maxPlayers).Msg("room created")

	v := e.room.View()
	if commit != nil {
		commit(v)
	}
	return v, nil
}

// Join appends player to the room as a non-leader who is not ready.
func (r *RoomRegistry) Join(id domain.RoomID, player domain.PlayerID, username, password string, commit Commit) (domain.RoomView, error) {
	name, err := domain.NormalizeUsername(username)
	if err != nil {
		return domain.RoomView{}, err
	}
	e, err := r.acquire(id)
	if err != nil {
		return domain.RoomView{}, err
	}
	defer e.mu.Unlock()

	room := e.room
	switch {
	case !room.CheckPassword(password):
		return domain.RoomView{}, domain.ErrUnauthorized
	case room.Full():
		return domain.RoomView{}, domain.ErrFull
	case room.Started:
		return domain.RoomView{}, domain.ErrAlreadyStarted
	case room.Has(player):
		return domain.RoomView{}, fmt.Errorf("%w: already a member of room %s", domain.ErrInvalidArgument, id)
	}

	room.Players = append(room.Players, domain.LobbyPlayer{ID: player, Username: name})
	log.Info().Str("module", "app.rooms").Str("room_id", string(id)).Str("player", string(player)).Int("players", len(room.Players)).Msg("player joined")

	v := room.View()
	if commit != nil {
		commit(v)
	}
	return v, nil
}

// Leave removes player from the room. The last member leaving destroys the
// room; a leaving leader hands over to the first remaining player. In a
// started game the leaver forfeits their seat.
func (r *RoomRegistry) Leave(id domain.RoomID, player domain.PlayerID, commit func(LeaveResult)) (LeaveResult, error) {
	e, err := r.acquire(id)
	if err != nil {
		return LeaveResult{}, err
	}
	defer e.mu.Unlock()

	room := e.room
	idx := room.IndexOf(player)
	if idx < 0 {
		return LeaveResult{}, fmt.Errorf("%w: %s is not in room %s", domain.ErrNotFound, player, id)
	}
	room.Players = slices.Delete(room.Players, idx, idx+1)

	res := LeaveResult{}
	if len(room.Players) == 0 {
		r.mu.Lock()
		delete(r.rooms, id)
		r.mu.Unlock()
		e.removed = true
		res.Destroyed = true
		log.Info().Str("module", "app.rooms").Str("room_id", string(id)).Msg("room destroyed")
	} else if room.Leader == player {
		room.Players[0].IsLeader = true
		room.Leader = room.Players[0].ID
		res.NewLeader = room.Leader
		log.Info().Str("module", "app.rooms").Str("room_id", string(id)).Str("leader", string(room.Leader)).Msg("leader handed over")
	}

	if room.Game != nil {
		if gi := room.Game.IndexOf(string(player)); gi >= 0 {
			st := game.Forfeit(*room.Game, gi)
			room.Game = &st
		}
	}

	log.Info().Str("module", "app.rooms").Str("room_id", string(id)).Str("player", string(player)).Int("players", len(room.Players)).Msg("player left")

	res.View = room.View()
	if commit != nil {
		commit(res)
	}
	return res, nil
}

// ToggleReady flips the ready flag of player. It reports false, and skips
// commit, when the player is not in the room.
func (r *RoomRegistry) ToggleReady(id domain.RoomID, player domain.PlayerID, commit Commit) (domain.RoomView, bool, error) {
	e, err := r.acquire(id)
	if err != nil {
		return domain.RoomView{}, false, err
	}
	defer e.mu.Unlock()

	idx := e.room.IndexOf(player)
	if idx < 0 {
		return e.room.View(), false, nil
	}
	e.room.Players[idx].Ready = !e.room.Players[idx].Ready

	v := e.room.View()
	if commit != nil {
		commit(v)
	}
	return v, true, nil
}

// Update runs fn on the room under its lock. fn may mutate the room and
// queue notifications; an error from fn is returned as is.
func (r *RoomRegistry) Update(id domain.RoomID, fn func(room *domain.Room) error) error {
	e, err := r.acquire(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()
	return fn(e.room)
}

// Get returns a snapshot of the room.
func (r *RoomRegistry) Get(id domain.RoomID) (domain.RoomView, error) {
	e, err := r.acquire(id)
	if err != nil {
		return domain.RoomView{}, err
	}
	defer e.mu.Unlock()
	return e.room.View(), nil
}

// List returns a summary of every live room ordered by id.
func (r *RoomRegistry) List() []domain.RoomSummary {
	r.mu.RLock()
	entries := make([]*roomEntry, 0, len(r.rooms))
	for _, e := range r.rooms {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]domain.RoomSummary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.removed {
			out = append(out, e.room.Summary())
		}
		e.mu.Unlock()
	}
	slices.SortFunc(out, func(a, b domain.RoomSummary) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// acquire returns the locked entry for id. The caller must unlock it.
func (r *RoomRegistry) acquire(id domain.RoomID) (*roomEntry, error) {
	r.mu.RLock()
	e, ok := r.rooms[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	e.mu.Lock()
	if e.removed {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return e, nil
}

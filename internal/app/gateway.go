package app

import (
	"context"
	"slices"
	"sync"

	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Conn   core.SignalConnection
	Rooms  map[domain.RoomID]struct{}
	Cancel context.CancelFunc
}

// Gateway maps live connections to their transport endpoint and to the rooms
// they created or joined. A connection's id doubles as its player id.
type Gateway struct {
	mu    sync.RWMutex
	conns map[core.ConnID]*connEntry
}

func NewGateway() *Gateway {
	return &Gateway{conns: make(map[core.ConnID]*connEntry)}
}

// PlayerOf returns the player identity of a connection.
func PlayerOf(id core.ConnID) domain.PlayerID { return domain.PlayerID(id) }

// ConnOf returns the connection behind a player identity.
func ConnOf(id domain.PlayerID) core.ConnID { return core.ConnID(id) }

func (g *Gateway) Bind(id core.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[id] = &connEntry{
		Conn:   conn,
		Rooms:  make(map[domain.RoomID]struct{}),
		Cancel: cancel,
	}
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Msg("bound connection")
}

// Unbind forgets the connection and returns the rooms it still belonged to,
// ordered by id.
func (g *Gateway) Unbind(id core.ConnID) []domain.RoomID {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.conns[id]
	if !ok {
		return nil
	}
	delete(g.conns, id)
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Int("rooms", len(e.Rooms)).Msg("unbound connection")
	return sortedRooms(e.Rooms)
}

func (g *Gateway) Conn(id core.ConnID) (core.SignalConnection, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if e, ok := g.conns[id]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Attach records that id is a member of room. It reports false for unknown
// connections.
func (g *Gateway) Attach(id core.ConnID, room domain.RoomID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.conns[id]
	if !ok {
		return false
	}
	e.Rooms[room] = struct{}{}
	return true
}

func (g *Gateway) Detach(id core.ConnID, room domain.RoomID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.conns[id]; ok {
		delete(e.Rooms, room)
	}
}

func (g *Gateway) InRoom(id core.ConnID, room domain.RoomID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.conns[id]
	if !ok {
		return false
	}
	_, in := e.Rooms[room]
	return in
}

// Targets resolves players to live connections, skipping any that are gone.
func (g *Gateway) Targets(players []domain.PlayerID) []core.Target {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]core.Target, 0, len(players))
	for _, p := range players {
		cid := ConnOf(p)
		if e, ok := g.conns[cid]; ok {
			out = append(out, core.Target{ID: cid, Conn: e.Conn})
		}
	}
	return out
}

// Cancel tears down the connection's transport. The adapter then reports the
// disconnect through the usual path.
func (g *Gateway) Cancel(id core.ConnID) bool {
	g.mu.RLock()
	e, ok := g.conns[id]
	g.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Msg("canceled connection")
	return true
}

func (g *Gateway) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.conns)
}

func sortedRooms(set map[domain.RoomID]struct{}) []domain.RoomID {
	out := make([]domain.RoomID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

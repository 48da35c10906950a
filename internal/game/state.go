// Package game implements the rules of the dice elimination game. Functions
// here are pure: they take a State and return the next one without touching
// the input.
package game

import "slices"

// Seat is a lobby member frozen into a game.
type Seat struct {
	ID       string
	Username string
}

type Player struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Eliminated bool            `json:"eliminated"`
	Cells      [CellCount]Cell `json:"cells"`
}

func (p Player) allInactive() bool {
	for _, c := range p.Cells {
		if c.IsActive {
			return false
		}
	}
	return true
}

// State is the authoritative game of one room. Players is fixed once the game
// starts; CurrentPlayer indexes into it.
type State struct {
	CurrentPlayer int      `json:"currentPlayer"`
	Players       []Player `json:"players"`
}

// NewState seats players in the given order with every cell dormant. The
// first seat moves first.
func NewState(seats []Seat) State {
	players := make([]Player, len(seats))
	for i, s := range seats {
		players[i] = Player{ID: s.ID, Username: s.Username}
	}
	return State{Players: players}
}

// Clone returns a deep copy. Player holds its cells by value, so copying the
// slice is enough.
func (s State) Clone() State {
	s.Players = slices.Clone(s.Players)
	return s
}

// Current returns the player whose turn it is.
func (s State) Current() (Player, bool) {
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentPlayer], true
}

func (s State) IndexOf(id string) int {
	return slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == id })
}

func (s State) EliminatedCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Eliminated {
			n++
		}
	}
	return n
}

// Winner returns the sole player left standing in a game that started with
// more than one player.
func (s State) Winner() (Player, bool) {
	if len(s.Players) < 2 {
		return Player{}, false
	}
	var (
		last  Player
		alive int
	)
	for _, p := range s.Players {
		if !p.Eliminated {
			alive++
			last = p
		}
	}
	if alive != 1 {
		return Player{}, false
	}
	return last, true
}

// advance moves the turn to the next player who is still in the game. The
// walk is bounded by the number of players: when everyone is eliminated the
// turn stays where it is.
func (s *State) advance() {
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		next := (s.CurrentPlayer + i) % n
		if !s.Players[next].Eliminated {
			s.CurrentPlayer = next
			return
		}
	}
}

package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/dkeye/Dicecells/internal/game"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("join: %w", domain.ErrNotFound), "Room not found"},
		{domain.ErrUnauthorized, "Incorrect password"},
		{domain.ErrFull, "Room is full"},
		{domain.ErrAlreadyStarted, "Game already in progress"},
		{domain.ErrUsernameTooLong, "Invalid request"},
		{errors.New("boom"), "Internal error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.UserMessage(tt.err), "%v", tt.err)
	}
}

func TestNormalizeUsername(t *testing.T) {
	name, err := domain.NormalizeUsername("  bob \t")
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	_, err = domain.NormalizeUsername("   ")
	assert.ErrorIs(t, err, domain.ErrUsernameEmpty)

	_, err = domain.NormalizeUsername(strings.Repeat("x", domain.MaxUsernameLen))
	assert.NoError(t, err)

	_, err = domain.NormalizeUsername(strings.Repeat("x", domain.MaxUsernameLen+1))
	assert.ErrorIs(t, err, domain.ErrUsernameTooLong)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRoomView(t *testing.T) {
	st := game.NewState([]game.Seat{{ID: "a"}, {ID: "b"}})
	r := &domain.Room{
		ID:         "123456",
		Leader:     "a",
		Password:   "hunter2",
		MaxPlayers: 2,
		Players: []domain.LobbyPlayer{
			{ID: "a", Username: "alice", Ready: true, IsLeader: true},
			{ID: "b", Username: "bob", Ready: true},
		},
		Started: true,
		Game:    &st,
	}

	v := r.View()
	assert.True(t, v.HasPassword)
	assert.Equal(t, []domain.PlayerID{"a", "b"}, v.Recipients())
	assert.True(t, r.Full())
	assert.True(t, r.AllReady())
	assert.True(t, r.CheckPassword("hunter2"))
	assert.False(t, r.CheckPassword(""))

	v.Players[0].Username = "changed"
	v.GameState.Players[0].Eliminated = true
	assert.Equal(t, "alice", r.Players[0].Username)
	assert.False(t, r.Game.Players[0].Eliminated)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hunter2")
	assert.Contains(t, string(b), `"hasPassword":true`)
}

func TestRoomViewEmpty(t *testing.T) {
	r := &domain.Room{ID: "111111", MaxPlayers: 3}
	v := r.View()
	assert.NotNil(t, v.Players)
	assert.Nil(t, v.GameState)
	assert.True(t, r.CheckPassword("anything"))

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"players":[]`)
	assert.Contains(t, string(b), `"gameState":null`)
}

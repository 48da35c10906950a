package orch

import (
	"errors"
	"fmt"

	"github.com/dkeye/Dicecells/internal/domain"
	"github.com/dkeye/Dicecells/internal/game"
)

var (
	ErrNotMember   = fmt.Errorf("%w: not a member of the room", domain.ErrUnauthorized)
	ErrNotLeader   = fmt.Errorf("%w: only the leader can start", domain.ErrUnauthorized)
	ErrNotYourTurn = fmt.Errorf("%w: not your turn", domain.ErrUnauthorized)
	ErrNotReady    = errors.New("not every player is ready")
	ErrNotStarted  = errors.New("game has not started")
)

// reason names a dropped intent for the logs.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrNotMember):
		return "not_member"
	case errors.Is(err, ErrNotLeader):
		return "not_leader"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	case errors.Is(err, domain.ErrAlreadyStarted):
		return "already_started"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, game.ErrInvalidMove):
		return "invalid_move"
	default:
		return "internal"
	}
}

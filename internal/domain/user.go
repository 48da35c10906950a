// Package domain contains the room records shared by the registry and the
// controller. Game rules live in package game.
package domain

import (
	"fmt"
	"strings"
)

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = fmt.Errorf("%w: username too long", ErrInvalidArgument)
	ErrUsernameEmpty   = fmt.Errorf("%w: username empty", ErrInvalidArgument)
)

// PlayerID is the identity of a player inside a room. It is the id of the
// connection that created or joined the room.
type PlayerID string

// NormalizeUsername trims surrounding space and checks the length bounds.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) == 0 {
		return "", ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return "", ErrUsernameTooLong
	}
	return username, nil
}

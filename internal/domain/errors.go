package domain

import "errors"

var (
	ErrNotFound        = errors.New("room not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrFull            = errors.New("room is full")
	ErrAlreadyStarted  = errors.New("game already in progress")
	ErrInvalidArgument = errors.New("invalid argument")
)

// UserMessage maps an error to the single-field message shown to the
// requesting connection.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Room not found"
	case errors.Is(err, ErrUnauthorized):
		return "Incorrect password"
	case errors.Is(err, ErrFull):
		return "Room is full"
	case errors.Is(err, ErrAlreadyStarted):
		return "Game already in progress"
	case errors.Is(err, ErrInvalidArgument):
		return "Invalid request"
	default:
		return "Internal error"
	}
}

package domain

import "fmt"

// ErrorKind separates semantic rule violations from malformed input.
type ErrorKind string

const (
	// InvalidAction is a semantic error against the current resource:
	// wrong turn, cards not owned, moves on a finished game.
	InvalidAction ErrorKind = "invalidAction"
	// InvalidPayload is a structural or decoding error: not JSON, wrong
	// shape, card value out of range, wrong exchange count.
	InvalidPayload ErrorKind = "invalidPayload"
)

// GameError is the domain error surfaced to the originating client.
// Detail is the human-readable text sent on the wire.
type GameError struct {
	Kind   ErrorKind
	Detail string
}

func (e *GameError) Error() string {
	switch e.Kind {
	case InvalidPayload:
		return fmt.Sprintf("Invalid payload: %s", e.Detail)
	default:
		return fmt.Sprintf("Invalid action: %s", e.Detail)
	}
}

// NewInvalidAction builds an InvalidAction error with a formatted detail.
func NewInvalidAction(format string, args ...any) *GameError {
	return &GameError{Kind: InvalidAction, Detail: fmt.Sprintf(format, args...)}
}

// NewInvalidPayload builds an InvalidPayload error with a formatted detail.
func NewInvalidPayload(format string, args ...any) *GameError {
	return &GameError{Kind: InvalidPayload, Detail: fmt.Sprintf(format, args...)}
}

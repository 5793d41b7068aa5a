package gamesave

import (
	"errors"
	"fmt"

	domain "github.com/example/game-save-demo/domain/gamesave"
)

var (
	// ErrInvalidToken is returned when the identity token is rejected. It
	// carries OutcomeUserHasNoAccountInfo.
	ErrInvalidToken = fmt.Errorf("invalid or expired identity token: %w",
		domain.OutcomeUserHasNoAccountInfo.Err())
	// ErrProviderNotInitialized is returned when a container is requested
	// before the player's game save provider exists.
	ErrProviderNotInitialized = errors.New("please initialize the game save provider first")
)

// Error codes carried in service responses.
const (
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeProviderNotInitialized = "provider_not_initialized"
	ErrCodeInvalidRequest         = "invalid_request"
	ErrCodeInternal               = "internal_error"
)

// errorCode maps service errors to response codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidToken):
		return ErrCodeInvalidToken
	case errors.Is(err, ErrProviderNotInitialized):
		return ErrCodeProviderNotInitialized
	default:
		return ErrCodeInternal
	}
}

// errorOutcome is the outcome reported alongside a service error. Errors
// without an outcome report NoAccess.
func errorOutcome(err error) domain.Outcome {
	return domain.OutcomeOf(err)
}

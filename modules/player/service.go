package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/example/game-save-demo/domain/gamesave"
)

// ErrInvalidPlayerCode is returned when a player code cannot identify a player.
var ErrInvalidPlayerCode = errors.New("player code must be 1-64 letters, digits, '_', '-' or '.'")

// playerNamespace scopes the name-based player IDs.
var playerNamespace = uuid.MustParse("6f1c2a8e-3b0d-4f57-9d1e-2a7c5b9e4d10")

// Identity is a signed-in player.
type Identity struct {
	PlayerID   string
	PlayerCode string
	Token      string
	ExpiresAt  time.Time
}

// Service signs players in and checks their identity tokens.
type Service struct {
	tokens *TokenManager
}

// NewService creates a new Service.
func NewService(tokens *TokenManager) *Service {
	return &Service{tokens: tokens}
}

// PlayerID returns the stable ID for a player code.
func PlayerID(playerCode string) string {
	return uuid.NewSHA1(playerNamespace, []byte(playerCode)).String()
}

// SignIn issues an identity for playerCode. The same code always maps to the
// same player ID.
func (s *Service) SignIn(playerCode string) (*Identity, error) {
	if !domain.ValidBlobName(playerCode) {
		return nil, ErrInvalidPlayerCode
	}

	playerID := PlayerID(playerCode)
	token, expiresAt, err := s.tokens.Generate(playerID, playerCode)
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity token: %w", err)
	}

	return &Identity{
		PlayerID:   playerID,
		PlayerCode: playerCode,
		Token:      token,
		ExpiresAt:  expiresAt,
	}, nil
}

// Validate checks an identity token.
func (s *Service) Validate(token string) (*IdentityClaims, error) {
	return s.tokens.Validate(token)
}

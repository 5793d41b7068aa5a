package gamesave

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"

	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/modules/player"
	"github.com/example/game-save-demo/modules/savestore"
)

// Service owns the per-player game save providers.
type Service struct {
	players player.PlayerPort
	storage savestore.StoragePort
	limits  domain.Limits
	logger  types.Logger

	mu        sync.RWMutex
	providers map[string]domain.Provider
	sfGroup   singleflight.Group // One initialization per player at a time
}

// NewService creates a new game save service.
func NewService(players player.PlayerPort, storage savestore.StoragePort, limits domain.Limits, logger types.Logger) *Service {
	return &Service{
		players:   players,
		storage:   storage,
		limits:    limits,
		logger:    logger,
		providers: make(map[string]domain.Provider),
	}
}

// Authenticate resolves an identity token to a player ID.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	resp, err := s.players.ValidateToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to validate token: %w", err)
	}
	if !resp.Valid {
		return "", ErrInvalidToken
	}
	return resp.PlayerID, nil
}

// InitProvider initializes the game save provider for the token's player.
// Storage usage is read once. Only a successful read registers the
// provider, and repeated calls for an initialized player return OK.
func (s *Service) InitProvider(ctx context.Context, token string) (string, domain.Outcome, error) {
	playerID, err := s.Authenticate(ctx, token)
	if err != nil {
		return "", domain.OutcomeNoAccess, err
	}

	if s.Initialized(playerID) {
		return playerID, domain.OutcomeOK, nil
	}

	val, _, _ := s.sfGroup.Do(playerID, func() (any, error) {
		if s.Initialized(playerID) {
			return domain.OutcomeOK, nil
		}
		usage, err := s.storage.Usage(ctx, playerID)
		if err != nil {
			s.logger.Warn("Game save provider storage check failed", "player", playerID, "error", err)
			return domain.OutcomeNoAccess, nil
		}

		s.mu.Lock()
		s.providers[playerID] = domain.WithLimits(s.storage.ForPlayer(playerID), s.limits)
		s.mu.Unlock()

		s.logger.Info("Game save provider initialized",
			"player", playerID,
			"used_bytes", usage.UsedBytes,
			"quota_bytes", usage.QuotaBytes)
		return domain.OutcomeOK, nil
	})
	return playerID, val.(domain.Outcome), nil
}

// Initialized reports whether playerID has an initialized provider.
func (s *Service) Initialized(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.providers[playerID]
	return ok
}

// Container returns a container bound to the token's player provider.
func (s *Service) Container(ctx context.Context, token, name, displayName string) (string, *domain.Container, error) {
	playerID, err := s.Authenticate(ctx, token)
	if err != nil {
		return "", nil, err
	}

	s.mu.RLock()
	provider, ok := s.providers[playerID]
	s.mu.RUnlock()
	if !ok {
		return playerID, nil, ErrProviderNotInitialized
	}

	return playerID, domain.NewContainer(provider, name, displayName, s.logger.With("player", playerID)), nil
}

package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// PlayerModule signs players in and validates their identity tokens.
type PlayerModule struct {
	config  TokenConfig
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*PlayerModule)(nil)
var _ mono.ServiceProviderModule = (*PlayerModule)(nil)
var _ mono.HealthCheckableModule = (*PlayerModule)(nil)

// NewModule creates a new PlayerModule.
func NewModule(config TokenConfig) *PlayerModule {
	return &PlayerModule{
		config:  config,
		service: NewService(NewTokenManager(config)),
	}
}

// Name returns the module name.
func (m *PlayerModule) Name() string {
	return "player"
}

// Start starts the module.
func (m *PlayerModule) Start(_ context.Context) error {
	log.Printf("[player] Module started (token ttl: %s)", m.config.TokenDuration)
	return nil
}

// Stop stops the module.
func (m *PlayerModule) Stop(_ context.Context) error {
	log.Println("[player] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *PlayerModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"issuer": m.config.Issuer,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *PlayerModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"sign-in",
		json.Unmarshal,
		json.Marshal,
		m.handleSignIn,
	); err != nil {
		return fmt.Errorf("failed to register sign-in service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"validate-token",
		json.Unmarshal,
		json.Marshal,
		m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	log.Printf("[player] Registered services: sign-in, validate-token")
	return nil
}

// handleSignIn handles player sign-in.
func (m *PlayerModule) handleSignIn(_ context.Context, req SignInRequest, _ *mono.Msg) (SignInResponse, error) {
	identity, err := m.service.SignIn(req.PlayerCode)
	if err != nil {
		return SignInResponse{Error: err.Error()}, nil
	}

	log.Printf("[player] Signed in %s as %s", identity.PlayerCode, identity.PlayerID)
	return SignInResponse{
		PlayerID:  identity.PlayerID,
		Token:     identity.Token,
		TokenType: "Bearer",
		ExpiresIn: m.service.tokens.TokenDuration(),
		ExpiresAt: identity.ExpiresAt,
	}, nil
}

// handleValidateToken handles token validation.
func (m *PlayerModule) handleValidateToken(_ context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.Validate(req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:      true,
		PlayerID:   claims.PlayerID,
		PlayerCode: claims.PlayerCode,
	}, nil
}

package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// PlayerPort defines the player operations other modules use.
type PlayerPort interface {
	SignIn(ctx context.Context, playerCode string) (*SignInResponse, error)
	ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error)
}

// playerAdapter implements PlayerPort using the service container.
type playerAdapter struct {
	container mono.ServiceContainer
}

// NewPlayerAdapter creates a new PlayerPort.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewPlayerAdapter(container mono.ServiceContainer) PlayerPort {
	if container == nil {
		panic("player adapter requires non-nil ServiceContainer")
	}
	return &playerAdapter{container: container}
}

// SignIn signs a player in via the sign-in service.
func (a *playerAdapter) SignIn(ctx context.Context, playerCode string) (*SignInResponse, error) {
	req := SignInRequest{PlayerCode: playerCode}
	var resp SignInResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"sign-in",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("sign-in service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

// ValidateToken checks an identity token via the validate-token service.
// An invalid token is reported in the response, not as an error.
func (a *playerAdapter) ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"validate-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token service call failed: %w", err)
	}
	return &resp, nil
}

package gamesave

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// GameSavePort is the game save API as seen by driving adapters.
type GameSavePort interface {
	InitProvider(ctx context.Context, req *InitProviderRequest) (*InitProviderResponse, error)
	SubmitBlobs(ctx context.Context, req *SubmitBlobsRequest) (*OutcomeResponse, error)
	FetchBlobs(ctx context.Context, req *FetchBlobsRequest) (*FetchBlobsResponse, error)
	DeleteContainer(ctx context.Context, req *DeleteContainerRequest) (*OutcomeResponse, error)
	SaveProfile(ctx context.Context, req *SaveProfileRequest) (*OutcomeResponse, error)
	LoadProfile(ctx context.Context, req *LoadProfileRequest) (*LoadProfileResponse, error)
}

// gameSaveAdapter wraps ServiceContainer for type-safe cross-module communication.
type gameSaveAdapter struct {
	container mono.ServiceContainer
}

// NewGameSaveAdapter creates a new adapter for game save services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewGameSaveAdapter(container mono.ServiceContainer) GameSavePort {
	if container == nil {
		panic("gamesave adapter requires non-nil ServiceContainer")
	}
	return &gameSaveAdapter{container: container}
}

// callService invokes service with req and decodes the reply into resp.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// InitProvider initializes the caller's provider via the init-provider service.
func (a *gameSaveAdapter) InitProvider(ctx context.Context, req *InitProviderRequest) (*InitProviderResponse, error) {
	var resp InitProviderResponse
	if err := callService(ctx, a.container, "init-provider", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitBlobs writes blobs via the submit-blobs service.
func (a *gameSaveAdapter) SubmitBlobs(ctx context.Context, req *SubmitBlobsRequest) (*OutcomeResponse, error) {
	var resp OutcomeResponse
	if err := callService(ctx, a.container, "submit-blobs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchBlobs reads blobs via the fetch-blobs service.
func (a *gameSaveAdapter) FetchBlobs(ctx context.Context, req *FetchBlobsRequest) (*FetchBlobsResponse, error) {
	var resp FetchBlobsResponse
	if err := callService(ctx, a.container, "fetch-blobs", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteContainer deletes a container via the delete-container service.
func (a *gameSaveAdapter) DeleteContainer(ctx context.Context, req *DeleteContainerRequest) (*OutcomeResponse, error) {
	var resp OutcomeResponse
	if err := callService(ctx, a.container, "delete-container", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveProfile saves the player profile via the save-profile service.
func (a *gameSaveAdapter) SaveProfile(ctx context.Context, req *SaveProfileRequest) (*OutcomeResponse, error) {
	var resp OutcomeResponse
	if err := callService(ctx, a.container, "save-profile", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoadProfile loads the player profile via the load-profile service.
func (a *gameSaveAdapter) LoadProfile(ctx context.Context, req *LoadProfileRequest) (*LoadProfileResponse, error) {
	var resp LoadProfileResponse
	if err := callService(ctx, a.container, "load-profile", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

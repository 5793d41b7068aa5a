package savestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/game-save-demo/domain/gamesave"
)

// StoragePort is the save store as seen by other modules.
type StoragePort interface {
	// ForPlayer returns a provider scoped to playerID.
	ForPlayer(playerID string) gamesave.Provider
	Usage(ctx context.Context, playerID string) (*UsageResponse, error)
}

// storageAdapter calls the savestore services over the service container.
type storageAdapter struct {
	container mono.ServiceContainer
}

// NewStorageAdapter creates a StoragePort backed by the savestore services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewStorageAdapter(container mono.ServiceContainer) StoragePort {
	if container == nil {
		panic("savestore adapter requires non-nil ServiceContainer")
	}
	return &storageAdapter{container: container}
}

func (a *storageAdapter) ForPlayer(playerID string) gamesave.Provider {
	return &remoteProvider{container: a.container, playerID: playerID}
}

// Usage returns the player's storage usage via the storage-usage service.
func (a *storageAdapter) Usage(ctx context.Context, playerID string) (*UsageResponse, error) {
	req := UsageRequest{PlayerID: playerID}
	var resp UsageResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "storage-usage", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("storage-usage service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

// remoteProvider implements gamesave.Provider over request-reply calls.
// Transport failures and backend faults surface as errors.
type remoteProvider struct {
	container mono.ServiceContainer
	playerID  string
}

var _ gamesave.Provider = (*remoteProvider)(nil)

func (p *remoteProvider) SubmitUpdates(ctx context.Context, container, displayName string, blobs gamesave.Blobs) (gamesave.Status, error) {
	req := SubmitUpdatesRequest{
		PlayerID:    p.playerID,
		Container:   container,
		DisplayName: displayName,
		Blobs:       blobs,
	}
	var resp StatusResponse
	if err := helper.CallRequestReplyService(
		ctx, p.container, "submit-updates", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return gamesave.StatusOK, fmt.Errorf("submit-updates service call failed: %w", err)
	}
	if resp.Error != "" {
		return gamesave.Status(resp.Status), errors.New(resp.Error)
	}
	return gamesave.Status(resp.Status), nil
}

func (p *remoteProvider) GetBlobs(ctx context.Context, container string, keys []string) (gamesave.Blobs, gamesave.Status, error) {
	req := GetBlobsRequest{
		PlayerID:  p.playerID,
		Container: container,
		Keys:      keys,
	}
	var resp GetBlobsResponse
	if err := helper.CallRequestReplyService(
		ctx, p.container, "get-blobs", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, gamesave.StatusOK, fmt.Errorf("get-blobs service call failed: %w", err)
	}
	if resp.Error != "" {
		return nil, gamesave.Status(resp.Status), errors.New(resp.Error)
	}
	return gamesave.Blobs(resp.Blobs), gamesave.Status(resp.Status), nil
}

func (p *remoteProvider) DeleteContainer(ctx context.Context, container string) (gamesave.Status, error) {
	req := DeleteContainerRequest{PlayerID: p.playerID, Container: container}
	var resp StatusResponse
	if err := helper.CallRequestReplyService(
		ctx, p.container, "delete-container", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return gamesave.StatusOK, fmt.Errorf("delete-container service call failed: %w", err)
	}
	if resp.Error != "" {
		return gamesave.Status(resp.Status), errors.New(resp.Error)
	}
	return gamesave.Status(resp.Status), nil
}

package gamesave

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/domain/profile"
	"github.com/example/game-save-demo/events"
	"github.com/example/game-save-demo/modules/player"
	"github.com/example/game-save-demo/modules/savestore"
)

// Module exposes game save containers to signed-in players.
type Module struct {
	limits   domain.Limits
	players  player.PlayerPort
	storage  savestore.StoragePort
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
)

// NewModule creates a new game save module.
func NewModule(limits domain.Limits, logger types.Logger) *Module {
	return &Module{
		limits: limits,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "gamesave"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"player", "savestore"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "player":
		m.players = player.NewPlayerAdapter(container)
	case "savestore":
		m.storage = savestore.NewStorageAdapter(container)
	}
}

// SetEventBus receives the event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ProviderInitializedV1.ToBase(),
		events.ContainerSavedV1.ToBase(),
		events.ContainerLoadedV1.ToBase(),
		events.ContainerDeletedV1.ToBase(),
	}
}

// RegisterServices registers the game save services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "init-provider", json.Unmarshal, json.Marshal, m.initProvider,
	); err != nil {
		return fmt.Errorf("failed to register init-provider service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "submit-blobs", json.Unmarshal, json.Marshal, m.submitBlobs,
	); err != nil {
		return fmt.Errorf("failed to register submit-blobs service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "fetch-blobs", json.Unmarshal, json.Marshal, m.fetchBlobs,
	); err != nil {
		return fmt.Errorf("failed to register fetch-blobs service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-container", json.Unmarshal, json.Marshal, m.deleteContainer,
	); err != nil {
		return fmt.Errorf("failed to register delete-container service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "save-profile", json.Unmarshal, json.Marshal, m.saveProfile,
	); err != nil {
		return fmt.Errorf("failed to register save-profile service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "load-profile", json.Unmarshal, json.Marshal, m.loadProfile,
	); err != nil {
		return fmt.Errorf("failed to register load-profile service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "init-provider, submit-blobs, fetch-blobs, delete-container, save-profile, load-profile")
	return nil
}

// Start builds the service once both dependencies are wired.
func (m *Module) Start(_ context.Context) error {
	if m.players == nil {
		return fmt.Errorf("players dependency not set")
	}
	if m.storage == nil {
		return fmt.Errorf("storage dependency not set")
	}
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, events will not be published")
	}

	m.service = NewService(m.players, m.storage, m.limits, m.logger)
	m.logger.Info("Game save module started",
		"max_blob_size", m.limits.MaxBlobSize,
		"max_blobs_per_update", m.limits.MaxBlobsPerUpdate)
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Game save module stopped")
	return nil
}

func (m *Module) initProvider(ctx context.Context, req InitProviderRequest, _ *mono.Msg) (InitProviderResponse, error) {
	playerID, outcome, err := m.service.InitProvider(ctx, req.Token)
	if err != nil {
		return InitProviderResponse{Outcome: errorOutcome(err), Error: errorCode(err)}, nil
	}

	if m.eventBus != nil {
		event := events.ProviderInitializedEvent{
			OperationID: events.NewOperationID(),
			PlayerID:    playerID,
			Outcome:     outcome.String(),
			At:          time.Now(),
		}
		if err := events.ProviderInitializedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish ProviderInitialized event", "player", playerID, "error", err)
		}
	}

	return InitProviderResponse{PlayerID: playerID, Outcome: outcome}, nil
}

func (m *Module) submitBlobs(ctx context.Context, req SubmitBlobsRequest, _ *mono.Msg) (OutcomeResponse, error) {
	playerID, container, err := m.service.Container(ctx, req.Token, req.Container, req.DisplayName)
	if err != nil {
		return OutcomeResponse{Outcome: errorOutcome(err), Error: errorCode(err)}, nil
	}

	blobs := domain.Blobs(req.Blobs)
	outcome := container.SubmitBlobs(ctx, blobs)
	m.publishSaved(playerID, req.Container, blobs, outcome)
	return OutcomeResponse{Outcome: outcome}, nil
}

func (m *Module) fetchBlobs(ctx context.Context, req FetchBlobsRequest, _ *mono.Msg) (FetchBlobsResponse, error) {
	playerID, container, err := m.service.Container(ctx, req.Token, req.Container, "")
	if err != nil {
		return FetchBlobsResponse{Outcome: errorOutcome(err), Error: errorCode(err)}, nil
	}

	blobs, outcome := container.FetchBlobs(ctx, req.Keys)
	m.publishLoaded(playerID, req.Container, len(req.Keys), len(blobs), outcome)
	return FetchBlobsResponse{Blobs: blobs, Outcome: outcome}, nil
}

func (m *Module) deleteContainer(ctx context.Context, req DeleteContainerRequest, _ *mono.Msg) (OutcomeResponse, error) {
	playerID, container, err := m.service.Container(ctx, req.Token, req.Container, "")
	if err != nil {
		return OutcomeResponse{Outcome: errorOutcome(err), Error: errorCode(err)}, nil
	}

	outcome := container.Delete(ctx)
	if m.eventBus != nil {
		event := events.ContainerDeletedEvent{
			OperationID: events.NewOperationID(),
			PlayerID:    playerID,
			Container:   req.Container,
			Outcome:     outcome.String(),
			At:          time.Now(),
		}
		if err := events.ContainerDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish ContainerDeleted event", "player", playerID, "error", err)
		}
	}
	return OutcomeResponse{Outcome: outcome}, nil
}

func (m *Module) saveProfile(ctx context.Context, req SaveProfileRequest, _ *mono.Msg) (OutcomeResponse, error) {
	playerID, container, err := m.service.Container(ctx, req.Token, profile.ContainerName, profile.DisplayName)
	if err != nil {
		return OutcomeResponse{Outcome: errorOutcome(err), Error: errorCode(err)}, nil
	}

	blobs := domain.Encode(&req.Profile, m.logger)
	outcome := container.SubmitBlobs(ctx, blobs)
	m.publishSaved(playerID, profile.ContainerName, blobs, outcome)
	return OutcomeResponse{Outcome: outcome}, nil
}

// loadProfile fetches and decodes in two steps so the number of restored
// fields can be reported.
func (m *Module) loadProfile(ctx context.Context, req LoadProfileRequest, _ *mono.Msg) (LoadProfileResponse, error) {
	playerID, container, err := m.service.Container(ctx, req.Token, profile.ContainerName, profile.DisplayName)
	if err != nil {
		return LoadProfileResponse{Outcome: errorOutcome(err), Error: errorCode(err)}, nil
	}

	var p profile.PlayerProfile
	keys := domain.SupportedFieldNames(&p)
	blobs, outcome := container.FetchBlobs(ctx, keys)
	assigned := 0
	if outcome.OK() {
		assigned = domain.Decode(&p, blobs, m.logger)
	}
	m.publishLoaded(playerID, profile.ContainerName, len(keys), len(blobs), outcome)
	return LoadProfileResponse{Profile: p, Assigned: assigned, Outcome: outcome}, nil
}

func (m *Module) publishSaved(playerID, container string, blobs domain.Blobs, outcome domain.Outcome) {
	if m.eventBus == nil {
		return
	}
	event := events.ContainerSavedEvent{
		OperationID: events.NewOperationID(),
		PlayerID:    playerID,
		Container:   container,
		Blobs:       len(blobs),
		Bytes:       blobs.Size(),
		Outcome:     outcome.String(),
		At:          time.Now(),
	}
	if err := events.ContainerSavedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish ContainerSaved event", "player", playerID, "error", err)
	}
}

func (m *Module) publishLoaded(playerID, container string, keys, found int, outcome domain.Outcome) {
	if m.eventBus == nil {
		return
	}
	event := events.ContainerLoadedEvent{
		OperationID: events.NewOperationID(),
		PlayerID:    playerID,
		Container:   container,
		Keys:        keys,
		Blobs:       found,
		Outcome:     outcome.String(),
		At:          time.Now(),
	}
	if err := events.ContainerLoadedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish ContainerLoaded event", "player", playerID, "error", err)
	}
}

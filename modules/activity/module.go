package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/game-save-demo/events"
)

// Module records game save events in a bounded journal.
type Module struct {
	journal *Journal
	logger  types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new activity module.
func NewModule(capacity int, logger types.Logger) *Module {
	return &Module{
		journal: NewJournal(capacity),
		logger:  logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "activity"
}

// Journal returns the activity journal.
func (m *Module) Journal() *Journal {
	return m.journal
}

// RegisterEventConsumers registers handlers for the game save events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.ProviderInitializedV1, m.handleProviderInitialized, m); err != nil {
		return fmt.Errorf("failed to register ProviderInitialized consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ContainerSavedV1, m.handleContainerSaved, m); err != nil {
		return fmt.Errorf("failed to register ContainerSaved consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ContainerLoadedV1, m.handleContainerLoaded, m); err != nil {
		return fmt.Errorf("failed to register ContainerLoaded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ContainerDeletedV1, m.handleContainerDeleted, m); err != nil {
		return fmt.Errorf("failed to register ContainerDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"ProviderInitialized.v1", "ContainerSaved.v1", "ContainerLoaded.v1", "ContainerDeleted.v1"})
	return nil
}

// severity is "info" for ok outcomes and "warning" otherwise.
func severity(outcome string) string {
	if outcome == "ok" {
		return "info"
	}
	return "warning"
}

func (m *Module) handleProviderInitialized(_ context.Context, event events.ProviderInitializedEvent, _ *mono.Msg) error {
	m.journal.Record(Entry{
		OperationID: event.OperationID,
		Kind:        "provider_initialized",
		PlayerID:    event.PlayerID,
		Outcome:     event.Outcome,
		Severity:    severity(event.Outcome),
		Message:     fmt.Sprintf("Game save provider initialized: %s", event.Outcome),
		At:          event.At,
	})
	m.logger.Debug("Recorded provider initialization", "player", event.PlayerID, "outcome", event.Outcome)
	return nil
}

func (m *Module) handleContainerSaved(_ context.Context, event events.ContainerSavedEvent, _ *mono.Msg) error {
	m.journal.Record(Entry{
		OperationID: event.OperationID,
		Kind:        "container_saved",
		PlayerID:    event.PlayerID,
		Container:   event.Container,
		Outcome:     event.Outcome,
		Severity:    severity(event.Outcome),
		Message:     fmt.Sprintf("Saved %d blobs (%d bytes) to %s: %s", event.Blobs, event.Bytes, event.Container, event.Outcome),
		At:          event.At,
	})
	m.logger.Debug("Recorded container save", "player", event.PlayerID, "container", event.Container)
	return nil
}

func (m *Module) handleContainerLoaded(_ context.Context, event events.ContainerLoadedEvent, _ *mono.Msg) error {
	m.journal.Record(Entry{
		OperationID: event.OperationID,
		Kind:        "container_loaded",
		PlayerID:    event.PlayerID,
		Container:   event.Container,
		Outcome:     event.Outcome,
		Severity:    severity(event.Outcome),
		Message:     fmt.Sprintf("Loaded %d of %d blobs from %s: %s", event.Blobs, event.Keys, event.Container, event.Outcome),
		At:          event.At,
	})
	m.logger.Debug("Recorded container load", "player", event.PlayerID, "container", event.Container)
	return nil
}

func (m *Module) handleContainerDeleted(_ context.Context, event events.ContainerDeletedEvent, _ *mono.Msg) error {
	m.journal.Record(Entry{
		OperationID: event.OperationID,
		Kind:        "container_deleted",
		PlayerID:    event.PlayerID,
		Container:   event.Container,
		Outcome:     event.Outcome,
		Severity:    severity(event.Outcome),
		Message:     fmt.Sprintf("Deleted %s: %s", event.Container, event.Outcome),
		At:          event.At,
	})
	m.logger.Debug("Recorded container delete", "player", event.PlayerID, "container", event.Container)
	return nil
}

// RegisterServices registers the list-activity service.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-activity", json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register list-activity service: %w", err)
	}

	m.logger.Info("Registered activity services", "services", []string{"list-activity"})
	return nil
}

func (m *Module) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	entries := m.journal.Recent(req.PlayerID, req.Limit)
	return ListActivityResponse{Entries: entries, Total: len(entries)}, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Activity module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}

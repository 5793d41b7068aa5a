package savestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/game-save-demo/domain/gamesave"
)

// Module exposes the configured save backend as request-reply services.
// It plays the role of the remote game-save storage service.
type Module struct {
	cfg     Config
	storage *fsjetstream.PluginModule
	store   *Store
	logger  types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a save store module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "savestore"
}

// SetPlugin receives the storage plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "storage" {
		return
	}
	storage, ok := plugin.(*fsjetstream.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for storage",
			"alias", alias,
			"expected", "*fsjetstream.PluginModule")
		return
	}
	m.storage = storage
	m.logger.Info("Received storage plugin", "alias", alias)
}

// Start opens the configured backend.
func (m *Module) Start(ctx context.Context) error {
	var backend Backend
	if m.cfg.Backend == BackendJetStream {
		if m.storage == nil {
			return fmt.Errorf("required plugin 'storage' not registered")
		}
		bucket := m.storage.Bucket(BucketName)
		if bucket == nil {
			return fmt.Errorf("bucket '%s' not found in storage plugin", BucketName)
		}
		backend = NewJetStreamBackend(bucket)
	} else {
		b, err := Open(ctx, m.cfg)
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", m.cfg.Backend, err)
		}
		backend = b
	}

	m.store = NewStore(backend, m.cfg.QuotaBytes, m.logger)
	m.logger.Info("Save store module started", "backend", backend.Kind(), "quota_bytes", m.cfg.QuotaBytes)
	return nil
}

// Stop closes the backend.
func (m *Module) Stop(_ context.Context) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Backend().Close(); err != nil {
		return fmt.Errorf("failed to close backend: %w", err)
	}
	m.logger.Info("Save store module stopped")
	return nil
}

// Health pings the backend.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{Healthy: false, Message: "backend not open"}
	}
	if err := m.store.Backend().Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: err.Error(),
			Details: map[string]any{"backend": m.store.Backend().Kind()},
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"backend": m.store.Backend().Kind()},
	}
}

// RegisterServices registers the storage services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "submit-updates", json.Unmarshal, json.Marshal, m.handleSubmitUpdates,
	); err != nil {
		return fmt.Errorf("failed to register submit-updates service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-blobs", json.Unmarshal, json.Marshal, m.handleGetBlobs,
	); err != nil {
		return fmt.Errorf("failed to register get-blobs service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-container", json.Unmarshal, json.Marshal, m.handleDeleteContainer,
	); err != nil {
		return fmt.Errorf("failed to register delete-container service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "storage-usage", json.Unmarshal, json.Marshal, m.handleUsage,
	); err != nil {
		return fmt.Errorf("failed to register storage-usage service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "submit-updates, get-blobs, delete-container, storage-usage")
	return nil
}

func (m *Module) handleSubmitUpdates(ctx context.Context, req SubmitUpdatesRequest, _ *mono.Msg) (StatusResponse, error) {
	if m.store == nil {
		return StatusResponse{Error: ErrNotReady.Error()}, nil
	}
	status, err := m.store.Submit(ctx, req.PlayerID, req.Container, req.DisplayName, gamesave.Blobs(req.Blobs))
	if err != nil {
		return StatusResponse{Status: int32(status), Error: err.Error()}, nil
	}
	return StatusResponse{Status: int32(status)}, nil
}

func (m *Module) handleGetBlobs(ctx context.Context, req GetBlobsRequest, _ *mono.Msg) (GetBlobsResponse, error) {
	if m.store == nil {
		return GetBlobsResponse{Error: ErrNotReady.Error()}, nil
	}
	blobs, status, err := m.store.Get(ctx, req.PlayerID, req.Container, req.Keys)
	if err != nil {
		return GetBlobsResponse{Status: int32(status), Error: err.Error()}, nil
	}
	return GetBlobsResponse{Blobs: blobs, Status: int32(status)}, nil
}

func (m *Module) handleDeleteContainer(ctx context.Context, req DeleteContainerRequest, _ *mono.Msg) (StatusResponse, error) {
	if m.store == nil {
		return StatusResponse{Error: ErrNotReady.Error()}, nil
	}
	status, err := m.store.Delete(ctx, req.PlayerID, req.Container)
	if err != nil {
		return StatusResponse{Status: int32(status), Error: err.Error()}, nil
	}
	return StatusResponse{Status: int32(status)}, nil
}

func (m *Module) handleUsage(ctx context.Context, req UsageRequest, _ *mono.Msg) (UsageResponse, error) {
	if m.store == nil {
		return UsageResponse{Error: ErrNotReady.Error()}, nil
	}
	used, quota, err := m.store.Usage(ctx, req.PlayerID)
	if err != nil {
		return UsageResponse{QuotaBytes: quota, Error: err.Error()}, nil
	}
	return UsageResponse{UsedBytes: used, QuotaBytes: quota}, nil
}

package savestore

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/game-save-demo/domain/gamesave"
)

// Backend kinds accepted by SAVE_BACKEND.
const (
	BackendJetStream = "jetstream"
	BackendRedis     = "redis"
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
)

// Backend persists blobs for every player. Player, container and blob names
// are validated before they reach a backend.
type Backend interface {
	// Kind returns the backend kind, e.g. "redis".
	Kind() string

	// Submit upserts blobs into the container, creating it when missing.
	Submit(ctx context.Context, playerID, container, displayName string, blobs gamesave.Blobs) error

	// Get returns the requested blobs that exist. Missing keys are omitted.
	Get(ctx context.Context, playerID, container string, keys []string) (gamesave.Blobs, error)

	// Delete removes every blob of the container. Deleting a missing
	// container is not an error.
	Delete(ctx context.Context, playerID, container string) error

	// Usage returns the total stored bytes for the player.
	Usage(ctx context.Context, playerID string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

func sortedKeys(blobs gamesave.Blobs) []string {
	keys := make([]string, 0, len(blobs))
	for k := range blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Open creates the backend named by cfg.Backend. The jetstream backend needs
// a bucket from the storage plugin and is built by the module instead.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Backend {
	case BackendRedis:
		backend, err = NewRedisBackend(ctx, cfg.RedisAddr)
	case BackendSQLite:
		db, openErr := OpenSQLite(cfg.SQLitePath)
		if openErr != nil {
			return nil, openErr
		}
		backend, err = NewGormBackend(db)
	case BackendPostgres:
		backend, err = NewPostgresBackend(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return backend, nil
}

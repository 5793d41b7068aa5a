package savestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/game-save-demo/domain/gamesave"
)

// DefaultRedisPrefix namespaces every key written by RedisBackend.
const DefaultRedisPrefix = "gamesave:"

// RedisBackend keeps one hash per container holding its blobs, a meta hash
// with the display name, and a per-player set indexing container names.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

var _ Backend = (*RedisBackend)(nil)

// NewRedisBackend connects to addr and verifies the connection.
func NewRedisBackend(ctx context.Context, addr string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisBackendWithClient(client, DefaultRedisPrefix), nil
}

// NewRedisBackendWithClient wraps an existing client.
func NewRedisBackendWithClient(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) blobsKey(playerID, container string) string {
	return b.prefix + playerID + ":" + container
}

func (b *RedisBackend) metaKey(playerID, container string) string {
	return b.prefix + playerID + ":" + container + ":meta"
}

func (b *RedisBackend) indexKey(playerID string) string {
	return b.prefix + playerID + ":containers"
}

func (b *RedisBackend) Kind() string { return BackendRedis }

func (b *RedisBackend) Submit(ctx context.Context, playerID, container, displayName string, blobs gamesave.Blobs) error {
	pipe := b.client.TxPipeline()
	if len(blobs) > 0 {
		fields := make(map[string]any, len(blobs))
		for k, v := range blobs {
			fields[k] = v
		}
		pipe.HSet(ctx, b.blobsKey(playerID, container), fields)
	}
	pipe.HSet(ctx, b.metaKey(playerID, container),
		"display_name", displayName,
		"updated_at", time.Now().UTC().Format(time.RFC3339),
	)
	pipe.SAdd(ctx, b.indexKey(playerID), container)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to submit blobs: %w", err)
	}
	return nil
}

func (b *RedisBackend) Get(ctx context.Context, playerID, container string, keys []string) (gamesave.Blobs, error) {
	blobs := make(gamesave.Blobs, len(keys))
	if len(keys) == 0 {
		return blobs, nil
	}
	values, err := b.client.HMGet(ctx, b.blobsKey(playerID, container), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get blobs: %w", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // missing field
		}
		blobs[keys[i]] = []byte(s)
	}
	return blobs, nil
}

func (b *RedisBackend) Delete(ctx context.Context, playerID, container string) error {
	pipe := b.client.TxPipeline()
	pipe.Del(ctx, b.blobsKey(playerID, container), b.metaKey(playerID, container))
	pipe.SRem(ctx, b.indexKey(playerID), container)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	return nil
}

func (b *RedisBackend) Usage(ctx context.Context, playerID string) (int64, error) {
	containers, err := b.client.SMembers(ctx, b.indexKey(playerID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list containers: %w", err)
	}
	var total int64
	for _, c := range containers {
		values, err := b.client.HVals(ctx, b.blobsKey(playerID, c)).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to read container %s: %w", c, err)
		}
		for _, v := range values {
			total += int64(len(v))
		}
	}
	return total, nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

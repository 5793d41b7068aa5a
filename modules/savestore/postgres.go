package savestore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/game-save-demo/domain/gamesave"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS save_blobs (
	player_id    TEXT        NOT NULL,
	container    TEXT        NOT NULL,
	name         TEXT        NOT NULL,
	data         BYTEA       NOT NULL,
	display_name TEXT        NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (player_id, container, name)
)`

const upsertBlobSQL = `
INSERT INTO save_blobs (player_id, container, name, data, display_name, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (player_id, container, name)
DO UPDATE SET data = EXCLUDED.data, display_name = EXCLUDED.display_name, updated_at = now()`

const selectBlobsSQL = `
SELECT name, data FROM save_blobs
WHERE player_id = $1 AND container = $2 AND name = ANY($3)`

const deleteContainerSQL = `DELETE FROM save_blobs WHERE player_id = $1 AND container = $2`

const usageSQL = `SELECT COALESCE(SUM(octet_length(data)), 0) FROM save_blobs WHERE player_id = $1`

// PostgresBackend stores blobs in PostgreSQL through a pgx pool.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

var _ Backend = (*PostgresBackend)(nil)

// NewPostgresBackend connects to databaseURL and creates the table if needed.
func NewPostgresBackend(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create save_blobs table: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (b *PostgresBackend) Kind() string { return BackendPostgres }

func (b *PostgresBackend) Submit(ctx context.Context, playerID, container, displayName string, blobs gamesave.Blobs) error {
	if len(blobs) == 0 {
		return nil
	}
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, name := range sortedKeys(blobs) {
		if _, err := tx.Exec(ctx, upsertBlobSQL, playerID, container, name, blobs[name], displayName); err != nil {
			return fmt.Errorf("failed to upsert blob %s: %w", name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit blobs: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Get(ctx context.Context, playerID, container string, keys []string) (gamesave.Blobs, error) {
	blobs := make(gamesave.Blobs, len(keys))
	if len(keys) == 0 {
		return blobs, nil
	}
	rows, err := b.pool.Query(ctx, selectBlobsSQL, playerID, container, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to query blobs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var data []byte
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan blob: %w", err)
		}
		blobs[name] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read blobs: %w", err)
	}
	return blobs, nil
}

func (b *PostgresBackend) Delete(ctx context.Context, playerID, container string) error {
	if _, err := b.pool.Exec(ctx, deleteContainerSQL, playerID, container); err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Usage(ctx context.Context, playerID string) (int64, error) {
	var total int64
	if err := b.pool.QueryRow(ctx, usageSQL, playerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute usage: %w", err)
	}
	return total, nil
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}

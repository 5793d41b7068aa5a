package savestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"

	"github.com/example/game-save-demo/domain/gamesave"
)

// BucketName is the object store bucket holding game saves.
const BucketName = "game-saves"

// Object headers written with every blob.
const (
	headerDisplayName = "Display-Name"
	headerPlayerID    = "Player-ID"
	headerSavedAt     = "Saved-At"
)

// JetStreamBackend stores each blob as the object <player>/<container>/<blob>.
type JetStreamBackend struct {
	bucket fsjetstream.FileStoragePort
}

var _ Backend = (*JetStreamBackend)(nil)

// NewJetStreamBackend wraps an fs-jetstream bucket.
func NewJetStreamBackend(bucket fsjetstream.FileStoragePort) *JetStreamBackend {
	return &JetStreamBackend{bucket: bucket}
}

func objectKey(playerID, container, blob string) string {
	return playerID + "/" + container + "/" + blob
}

func containerPrefix(playerID, container string) string {
	return playerID + "/" + container + "/"
}

func (b *JetStreamBackend) Kind() string { return BackendJetStream }

func (b *JetStreamBackend) Submit(ctx context.Context, playerID, container, displayName string, blobs gamesave.Blobs) error {
	headers := map[string]string{
		headerDisplayName: displayName,
		headerPlayerID:    playerID,
		headerSavedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	for _, name := range sortedKeys(blobs) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := b.bucket.Put(ctx, objectKey(playerID, container, name), blobs[name],
			fsjetstream.WithHeaders(headers),
		); err != nil {
			return fmt.Errorf("failed to put blob %s: %w", name, err)
		}
	}
	return nil
}

// list returns the objects under prefix. An empty bucket lists as empty.
func (b *JetStreamBackend) list(ctx context.Context, prefix string) ([]fsjetstream.ObjectInfo, error) {
	objects, err := b.bucket.ListWithContext(ctx, fsjetstream.WithPrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	return objects, nil
}

// present maps the blob names stored in the container to their objects.
func (b *JetStreamBackend) present(ctx context.Context, playerID, container string) (map[string]fsjetstream.ObjectInfo, error) {
	prefix := containerPrefix(playerID, container)
	objects, err := b.list(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]fsjetstream.ObjectInfo, len(objects))
	for _, obj := range objects {
		out[strings.TrimPrefix(obj.Name, prefix)] = obj
	}
	return out, nil
}

func (b *JetStreamBackend) Get(ctx context.Context, playerID, container string, keys []string) (gamesave.Blobs, error) {
	blobs := make(gamesave.Blobs, len(keys))
	if len(keys) == 0 {
		return blobs, nil
	}
	stored, err := b.present(ctx, playerID, container)
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		obj, ok := stored[k]
		if !ok {
			continue
		}
		data, err := b.bucket.GetWithContext(ctx, obj.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to get blob %s: %w", k, err)
		}
		blobs[k] = data
	}
	return blobs, nil
}

func (b *JetStreamBackend) Delete(ctx context.Context, playerID, container string) error {
	stored, err := b.present(ctx, playerID, container)
	if err != nil {
		return err
	}
	for name, obj := range stored {
		if err := b.bucket.DeleteWithContext(ctx, obj.Name); err != nil {
			return fmt.Errorf("failed to delete blob %s: %w", name, err)
		}
	}
	return nil
}

func (b *JetStreamBackend) Usage(ctx context.Context, playerID string) (int64, error) {
	objects, err := b.list(ctx, playerID+"/")
	if err != nil {
		return 0, err
	}
	var total int64
	for _, obj := range objects {
		total += int64(obj.Size)
	}
	return total, nil
}

func (b *JetStreamBackend) Ping(ctx context.Context) error {
	_, err := b.list(ctx, "_ping/")
	return err
}

func (b *JetStreamBackend) Close() error { return nil }

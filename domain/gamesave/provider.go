package gamesave

import (
	"context"

	"github.com/go-monolith/mono/pkg/types"
)

// Provider is the remote storage service that owns a player's containers.
// Implementations report expected failures through Status and return a
// non-nil error only for unexpected faults.
type Provider interface {
	// SubmitUpdates overwrites the given blobs in container, creating it when
	// missing. Blobs not named are left untouched.
	SubmitUpdates(ctx context.Context, container, displayName string, blobs Blobs) (Status, error)

	// GetBlobs returns the requested blobs that exist in container.
	// Missing keys are omitted from the result.
	GetBlobs(ctx context.Context, container string, keys []string) (Blobs, Status, error)

	// DeleteContainer removes container and every blob in it.
	DeleteContainer(ctx context.Context, container string) (Status, error)
}

// Limits bounds the size of a single submit or fetch. Zero disables a limit.
type Limits struct {
	MaxBlobSize       int
	MaxBlobsPerUpdate int
	MaxBlobsPerRead   int
}

// DefaultLimits returns the limits applied when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxBlobSize:       16 * 1024 * 1024,
		MaxBlobsPerUpdate: 256,
		MaxBlobsPerRead:   256,
	}
}

type limitedProvider struct {
	next   Provider
	limits Limits
}

// WithLimits wraps p so that oversized requests are rejected before reaching it.
func WithLimits(p Provider, limits Limits) Provider {
	return &limitedProvider{next: p, limits: limits}
}

func (l *limitedProvider) SubmitUpdates(ctx context.Context, container, displayName string, blobs Blobs) (Status, error) {
	if l.limits.MaxBlobsPerUpdate > 0 && len(blobs) > l.limits.MaxBlobsPerUpdate {
		return StatusUpdateTooBig, nil
	}
	if l.limits.MaxBlobSize > 0 {
		for _, data := range blobs {
			if len(data) > l.limits.MaxBlobSize {
				return StatusUpdateTooBig, nil
			}
		}
	}
	return l.next.SubmitUpdates(ctx, container, displayName, blobs)
}

func (l *limitedProvider) GetBlobs(ctx context.Context, container string, keys []string) (Blobs, Status, error) {
	if l.limits.MaxBlobsPerRead > 0 && len(keys) > l.limits.MaxBlobsPerRead {
		return nil, StatusProvidedBufferTooSmall, nil
	}
	return l.next.GetBlobs(ctx, container, keys)
}

func (l *limitedProvider) DeleteContainer(ctx context.Context, container string) (Status, error) {
	return l.next.DeleteContainer(ctx, container)
}

// nopLogger discards everything. It stands in when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any)             {}
func (nopLogger) Info(string, ...any)              {}
func (nopLogger) Warn(string, ...any)              {}
func (nopLogger) Error(string, ...any)             {}
func (n nopLogger) With(...any) types.Logger       { return n }
func (n nopLogger) WithError(error) types.Logger   { return n }
func (n nopLogger) WithModule(string) types.Logger { return n }

func orNop(logger types.Logger) types.Logger {
	if logger == nil {
		return nopLogger{}
	}
	return logger
}

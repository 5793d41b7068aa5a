package gamesave

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono/pkg/types"
)

// Container is a gateway to one named remote container of a player.
// It holds no container contents between operations.
type Container struct {
	name        string
	displayName string
	provider    Provider
	logger      types.Logger
}

// NewContainer binds provider to the container name. displayName defaults to
// name when empty. A nil logger discards output.
func NewContainer(provider Provider, name, displayName string, logger types.Logger) *Container {
	if displayName == "" {
		displayName = name
	}
	return &Container{
		name:        name,
		displayName: displayName,
		provider:    provider,
		logger:      orNop(logger).With("container", name),
	}
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// DisplayName returns the human-readable container name sent on submit.
func (c *Container) DisplayName() string {
	return c.displayName
}

// Save encodes every supported field of s and submits the buffers.
func (c *Container) Save(ctx context.Context, s Schema) (out Outcome) {
	defer c.recoverFault("save", &out)

	blobs := Encode(s, c.logger)
	out = c.SubmitBlobs(ctx, blobs)
	if out.OK() {
		c.logger.Debug("Container saved", "fields", len(blobs))
	}
	return out
}

// Load fetches the supported fields of s and assigns those present remotely.
// s is not modified unless the fetch succeeds.
func (c *Container) Load(ctx context.Context, s Schema) (out Outcome) {
	defer c.recoverFault("load", &out)

	blobs, out := c.FetchBlobs(ctx, SupportedFieldNames(s))
	if !out.OK() {
		return out
	}
	n := Decode(s, blobs, c.logger)
	c.logger.Debug("Container loaded", "fetched", len(blobs), "assigned", n)
	return out
}

// SubmitBlobs writes already-encoded buffers to the container.
func (c *Container) SubmitBlobs(ctx context.Context, blobs Blobs) (out Outcome) {
	defer c.recoverFault("submit", &out)

	if rejected, ok := c.checkNames(blobKeys(blobs)); !ok {
		return rejected
	}
	status, err := c.provider.SubmitUpdates(ctx, c.name, c.displayName, blobs)
	return c.resolve("submit", status, err)
}

// FetchBlobs reads the named buffers. Only keys present remotely are returned.
// The result is nil when the outcome is not OK.
func (c *Container) FetchBlobs(ctx context.Context, keys []string) (blobs Blobs, out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Container operation panicked", "op", "fetch", "panic", fmt.Sprint(r))
			blobs, out = nil, OutcomeNoAccess
		}
	}()

	if rejected, ok := c.checkNames(keys); !ok {
		return nil, rejected
	}
	remote, status, err := c.provider.GetBlobs(ctx, c.name, keys)
	out = c.resolve("fetch", status, err)
	if !out.OK() {
		return nil, out
	}

	blobs = make(Blobs, len(keys))
	for _, k := range keys {
		if data, ok := remote[k]; ok {
			blobs[k] = data
		}
	}
	return blobs, out
}

// Delete removes the container and all its buffers.
func (c *Container) Delete(ctx context.Context) (out Outcome) {
	defer c.recoverFault("delete", &out)

	if rejected, ok := c.checkNames(nil); !ok {
		return rejected
	}
	status, err := c.provider.DeleteContainer(ctx, c.name)
	return c.resolve("delete", status, err)
}

// SaveAsync runs Save in its own goroutine. The channel yields exactly one
// Outcome and is then closed.
func (c *Container) SaveAsync(ctx context.Context, s Schema) <-chan Outcome {
	return async(func() Outcome { return c.Save(ctx, s) })
}

// LoadAsync runs Load in its own goroutine.
func (c *Container) LoadAsync(ctx context.Context, s Schema) <-chan Outcome {
	return async(func() Outcome { return c.Load(ctx, s) })
}

// DeleteAsync runs Delete in its own goroutine.
func (c *Container) DeleteAsync(ctx context.Context) <-chan Outcome {
	return async(func() Outcome { return c.Delete(ctx) })
}

func async(fn func() Outcome) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		ch <- fn()
	}()
	return ch
}

func (c *Container) checkNames(keys []string) (Outcome, bool) {
	if c.provider == nil {
		c.logger.Error("Container has no storage provider")
		return OutcomeNoAccess, false
	}
	if !ValidContainerName(c.name) {
		c.logger.Warn("Invalid container name")
		return OutcomeInvalidContainerName, false
	}
	for _, k := range keys {
		if !ValidBlobName(k) {
			c.logger.Warn("Invalid blob name", "blob", k)
			return OutcomeInvalidContainerName, false
		}
	}
	return OutcomeOK, true
}

func (c *Container) resolve(op string, status Status, err error) Outcome {
	if err != nil {
		c.logger.Error("Container operation failed", "op", op, "error", err)
		return OutcomeNoAccess
	}
	out, ok := Translate(status)
	if !ok {
		c.logger.Error("Unmapped storage status", "op", op, "status", int32(status))
		return OutcomeNoAccess
	}
	if !out.OK() {
		c.logger.Info("Container operation rejected", "op", op, "outcome", out.String())
	}
	return out
}

func (c *Container) recoverFault(op string, out *Outcome) {
	if r := recover(); r != nil {
		c.logger.Error("Container operation panicked", "op", op, "panic", fmt.Sprint(r))
		*out = OutcomeNoAccess
	}
}

func blobKeys(blobs Blobs) []string {
	keys := make([]string, 0, len(blobs))
	for k := range blobs {
		keys = append(keys, k)
	}
	return keys
}

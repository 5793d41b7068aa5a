package savestore

import (
	"context"
	"testing"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/game-save-demo/domain/gamesave"
)

// newTestApp creates an in-process mono app with an in-memory game-saves
// bucket registered under the "storage" alias.
func newTestApp(t *testing.T) (mono.MonoApplication, *fsjetstream.PluginModule) {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
		mono.WithJetStreamStorageDir(t.TempDir()),
	)
	require.NoError(t, err)

	plugin, err := fsjetstream.New(fsjetstream.Config{
		Buckets: []fsjetstream.BucketConfig{
			{
				Name:        BucketName,
				Description: "Test bucket",
				MaxBytes:    10 * 1024 * 1024,
				Storage:     fsjetstream.MemoryStorage,
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, app.RegisterPlugin(plugin, "storage"))
	return app, plugin
}

// createTestModule starts the test app and returns a started module on top
// of its bucket.
func createTestModule(t *testing.T) *Module {
	t.Helper()

	app, plugin := newTestApp(t)
	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	cfg := DefaultConfig()
	cfg.Backend = BackendJetStream
	module := NewModule(cfg, &mockLogger{})
	module.SetPlugin("storage", plugin)
	require.NoError(t, module.Start(context.Background()))
	return module
}

// storedDisplayName reads the display name header of the container's blobs.
func storedDisplayName(ctx context.Context, b *JetStreamBackend, playerID, container string) (string, error) {
	stored, err := b.present(ctx, playerID, container)
	if err != nil {
		return "", err
	}
	for _, obj := range stored {
		return obj.Headers[headerDisplayName], nil
	}
	return "", nil
}

func TestJetStreamBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	module := createTestModule(t)
	backend, ok := module.store.Backend().(*JetStreamBackend)
	require.True(t, ok)

	require.NoError(t, backend.Submit(ctx, testPlayer, "profile", "Player Profile", gamesave.Blobs{
		"Score": {0x2A, 0, 0, 0},
		"Name":  []byte("Ada"),
	}))

	blobs, err := backend.Get(ctx, testPlayer, "profile", []string{"Score", "Missing"})
	require.NoError(t, err)
	assert.Equal(t, gamesave.Blobs{"Score": {0x2A, 0, 0, 0}}, blobs)

	name, err := storedDisplayName(ctx, backend, testPlayer, "profile")
	require.NoError(t, err)
	assert.Equal(t, "Player Profile", name)

	used, err := backend.Usage(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, int64(7), used)

	require.NoError(t, backend.Delete(ctx, testPlayer, "profile"))
	blobs, err = backend.Get(ctx, testPlayer, "profile", []string{"Score", "Name"})
	require.NoError(t, err)
	assert.Empty(t, blobs)
}

func TestJetStreamBackend_CanceledContext(t *testing.T) {
	module := createTestModule(t)
	backend := module.store.Backend()
	require.NoError(t, backend.Submit(context.Background(), testPlayer, "profile", "", gamesave.Blobs{"a": {1}}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.Get(ctx, testPlayer, "profile", []string{"a"})
	assert.Error(t, err)
	assert.Error(t, backend.Delete(ctx, testPlayer, "profile"))

	blobs, err := backend.Get(context.Background(), testPlayer, "profile", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, gamesave.Blobs{"a": {1}}, blobs)
}

func TestJetStreamBackend_ContainersDoNotShareBlobs(t *testing.T) {
	ctx := context.Background()
	module := createTestModule(t)
	backend := module.store.Backend()

	require.NoError(t, backend.Submit(ctx, testPlayer, "slot", "", gamesave.Blobs{"a": {1}}))
	require.NoError(t, backend.Submit(ctx, testPlayer, "slot2", "", gamesave.Blobs{"a": {2}}))
	require.NoError(t, backend.Delete(ctx, testPlayer, "slot"))

	blobs, err := backend.Get(ctx, testPlayer, "slot2", []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, gamesave.Blobs{"a": {2}}, blobs)
}

func TestModule_Handlers(t *testing.T) {
	ctx := context.Background()
	module := createTestModule(t)

	resp, err := module.handleSubmitUpdates(ctx, SubmitUpdatesRequest{
		PlayerID:    testPlayer,
		Container:   "profile",
		DisplayName: "Player Profile",
		Blobs:       map[string][]byte{"Score": {1, 0, 0, 0}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(gamesave.StatusOK), resp.Status)
	assert.Empty(t, resp.Error)

	got, err := module.handleGetBlobs(ctx, GetBlobsRequest{
		PlayerID:  testPlayer,
		Container: "profile",
		Keys:      []string{"Score"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"Score": {1, 0, 0, 0}}, got.Blobs)

	usage, err := module.handleUsage(ctx, UsageRequest{PlayerID: testPlayer}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), usage.UsedBytes)

	resp, err = module.handleSubmitUpdates(ctx, SubmitUpdatesRequest{
		PlayerID:  testPlayer,
		Container: "../etc",
		Blobs:     map[string][]byte{"x": {1}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(gamesave.StatusInvalidContainerName), resp.Status)

	resp, err = module.handleDeleteContainer(ctx, DeleteContainerRequest{PlayerID: testPlayer, Container: "profile"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(gamesave.StatusOK), resp.Status)

	health := module.Health(ctx)
	assert.True(t, health.Healthy)
}

func TestModule_NotStarted(t *testing.T) {
	module := NewModule(DefaultConfig(), &mockLogger{})

	resp, err := module.handleSubmitUpdates(context.Background(), SubmitUpdatesRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, ErrNotReady.Error(), resp.Error)
	assert.False(t, module.Health(context.Background()).Healthy)

	err = module.Start(context.Background())
	assert.Error(t, err, "jetstream backend requires the storage plugin")
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"

	"github.com/example/game-save-demo/modules/activity"
	"github.com/example/game-save-demo/modules/api"
	"github.com/example/game-save-demo/modules/gamesave"
	"github.com/example/game-save-demo/modules/player"
	"github.com/example/game-save-demo/modules/savestore"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := loadConfig()

	log.Println("=== Game Save Demo ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Save Backend: %s", cfg.Store.Backend)
	log.Printf("Storage Path: %s", cfg.StoragePath)

	// Create mono application with embedded NATS JetStream
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithNATSPort(cfg.NATSPort),
		mono.WithJetStreamStorageDir(cfg.StoragePath),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// The object store plugin is only needed by the jetstream backend.
	if cfg.Store.Backend == savestore.BackendJetStream {
		storagePlugin, err := fsjetstream.New(fsjetstream.Config{
			Buckets: []fsjetstream.BucketConfig{
				{
					Name:        savestore.BucketName,
					Description: "Game save blobs",
					MaxBytes:    cfg.BucketMaxBytes,
					Storage:     fsjetstream.FileStorage,
					Compression: true,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to create storage plugin: %v", err)
		}
		if err := app.RegisterPlugin(storagePlugin, "storage"); err != nil {
			log.Fatalf("Failed to register storage plugin: %v", err)
		}
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(player.NewModule(cfg.Token))                       // Identity tokens
	app.Register(savestore.NewModule(cfg.Store, app.Logger()))      // Remote storage service
	app.Register(activity.NewModule(cfg.JournalSize, app.Logger())) // Event consumer
	app.Register(gamesave.NewModule(cfg.Limits, app.Logger()))      // Core domain, emits events
	app.Register(api.NewModule(cfg.HTTPPort))                       // HTTP API

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  POST   /api/v1/players/sign-in              - Sign in with a player code")
	log.Println("  POST   /api/v1/players/:player/provider     - Initialize the game save provider")
	log.Println("  PUT    /api/v1/containers/:container/blobs  - Write blobs")
	log.Println("  GET    /api/v1/containers/:container/blobs  - Read blobs (?keys=a,b)")
	log.Println("  DELETE /api/v1/containers/:container/blobs  - Delete a container")
	log.Println("  PUT    /api/v1/profile                      - Save the player profile")
	log.Println("  GET    /api/v1/profile                      - Load the player profile")
	log.Println("  GET    /api/v1/activity                     - Recent game save activity")
	log.Println("  GET    /health                              - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

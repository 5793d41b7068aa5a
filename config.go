package main

import (
	"log"
	"os"
	"strconv"
	"time"

	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/modules/activity"
	"github.com/example/game-save-demo/modules/player"
	"github.com/example/game-save-demo/modules/savestore"
)

// Config holds the application settings read from the environment.
type Config struct {
	HTTPPort       int
	NATSPort       int
	StoragePath    string
	BucketMaxBytes int64
	JournalSize    int
	Store          savestore.Config
	Limits         domain.Limits
	Token          player.TokenConfig
}

// loadConfig reads the configuration from environment variables.
func loadConfig() Config {
	store := savestore.DefaultConfig()
	store.Backend = getEnv("SAVE_BACKEND", store.Backend)
	store.RedisAddr = getEnv("REDIS_ADDR", store.RedisAddr)
	store.SQLitePath = getEnv("SQLITE_PATH", store.SQLitePath)
	store.DatabaseURL = getEnv("DATABASE_URL", store.DatabaseURL)
	store.QuotaBytes = getEnvInt64("USER_QUOTA_BYTES", store.QuotaBytes)

	limits := domain.DefaultLimits()
	limits.MaxBlobSize = getEnvInt("MAX_BLOB_SIZE", limits.MaxBlobSize)
	limits.MaxBlobsPerUpdate = getEnvInt("MAX_BLOBS_PER_UPDATE", limits.MaxBlobsPerUpdate)
	limits.MaxBlobsPerRead = getEnvInt("MAX_BLOBS_PER_READ", limits.MaxBlobsPerRead)

	token := player.DefaultTokenConfig()
	token.SecretKey = getEnv("JWT_SECRET", token.SecretKey)
	token.Issuer = getEnv("JWT_ISSUER", token.Issuer)
	token.TokenDuration = getEnvDuration("TOKEN_TTL", token.TokenDuration)

	return Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 3000),
		NATSPort:       getEnvInt("NATS_PORT", 4222),
		StoragePath:    getEnv("STORAGE_PATH", "/tmp/game-save-demo"),
		BucketMaxBytes: getEnvInt64("BUCKET_MAX_BYTES", 1024*1024*1024), // 1GB default
		JournalSize:    getEnvInt("ACTIVITY_JOURNAL_SIZE", activity.DefaultCapacity),
		Store:          store,
		Limits:         limits,
		Token:          token,
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvInt64 returns environment variable as int64 or default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int64 value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/game-save-demo/modules/savestore"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadConfig()

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, savestore.BackendJetStream, cfg.Store.Backend)
	assert.Equal(t, 256, cfg.Limits.MaxBlobsPerUpdate)
	assert.Equal(t, time.Hour, cfg.Token.TokenDuration)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SAVE_BACKEND", "sqlite")
	t.Setenv("USER_QUOTA_BYTES", "1024")
	t.Setenv("MAX_BLOB_SIZE", "512")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := loadConfig()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, savestore.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, int64(1024), cfg.Store.QuotaBytes)
	assert.Equal(t, 512, cfg.Limits.MaxBlobSize)
	assert.Equal(t, 15*time.Minute, cfg.Token.TokenDuration)
	assert.Equal(t, "s3cret", cfg.Token.SecretKey)
}

func TestGetEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("TOKEN_TTL", "soon")

	assert.Equal(t, 3000, getEnvInt("HTTP_PORT", 3000))
	assert.Equal(t, time.Minute, getEnvDuration("TOKEN_TTL", time.Minute))
}

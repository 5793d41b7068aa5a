package api

import (
	"time"

	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/domain/profile"
	"github.com/example/game-save-demo/modules/activity"
)

// SignInRequest is the HTTP request for signing a player in.
type SignInRequest struct {
	PlayerCode string `json:"player_code"`
}

// SignInResponse is the HTTP response carrying the identity token.
type SignInResponse struct {
	PlayerID  string    `json:"player_id"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresIn int64     `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProviderResponse is the HTTP response for provider initialization.
type ProviderResponse struct {
	PlayerID string         `json:"player_id"`
	Outcome  domain.Outcome `json:"outcome"`
}

// PutBlobsRequest is the HTTP request for writing blobs. Blob values are
// base64 in JSON.
type PutBlobsRequest struct {
	DisplayName string            `json:"display_name,omitempty"`
	Blobs       map[string][]byte `json:"blobs"`
}

// BlobsResponse is the HTTP response for reading blobs.
type BlobsResponse struct {
	Container string            `json:"container"`
	Blobs     map[string][]byte `json:"blobs"`
	Outcome   domain.Outcome    `json:"outcome"`
}

// OutcomeResponse is the HTTP response for operations reporting an outcome.
type OutcomeResponse struct {
	Outcome domain.Outcome `json:"outcome"`
}

// ProfileResponse is the HTTP response for loading the profile.
type ProfileResponse struct {
	Profile  profile.PlayerProfile `json:"profile"`
	Assigned int                   `json:"assigned"`
	Outcome  domain.Outcome        `json:"outcome"`
}

// ActivityResponse is the HTTP response for the activity journal.
type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
	Total   int              `json:"total"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Outcome domain.Outcome `json:"outcome,omitempty"`
}

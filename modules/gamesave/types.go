package gamesave

import (
	domain "github.com/example/game-save-demo/domain/gamesave"
	"github.com/example/game-save-demo/domain/profile"
)

// InitProviderRequest initializes the caller's game save provider.
type InitProviderRequest struct {
	Token string `json:"token"`
}

// InitProviderResponse reports the initialization outcome.
type InitProviderResponse struct {
	PlayerID string         `json:"player_id,omitempty"`
	Outcome  domain.Outcome `json:"outcome"`
	Error    string         `json:"error,omitempty"`
}

// SubmitBlobsRequest writes raw blobs to a container.
type SubmitBlobsRequest struct {
	Token       string            `json:"token"`
	Container   string            `json:"container"`
	DisplayName string            `json:"display_name,omitempty"`
	Blobs       map[string][]byte `json:"blobs"`
}

// FetchBlobsRequest reads raw blobs from a container.
type FetchBlobsRequest struct {
	Token     string   `json:"token"`
	Container string   `json:"container"`
	Keys      []string `json:"keys"`
}

// FetchBlobsResponse carries the blobs that were found.
type FetchBlobsResponse struct {
	Blobs   map[string][]byte `json:"blobs,omitempty"`
	Outcome domain.Outcome    `json:"outcome"`
	Error   string            `json:"error,omitempty"`
}

// DeleteContainerRequest deletes a container.
type DeleteContainerRequest struct {
	Token     string `json:"token"`
	Container string `json:"container"`
}

// OutcomeResponse is the reply for operations that only report an outcome.
type OutcomeResponse struct {
	Outcome domain.Outcome `json:"outcome"`
	Error   string         `json:"error,omitempty"`
}

// SaveProfileRequest saves the player profile.
type SaveProfileRequest struct {
	Token   string                `json:"token"`
	Profile profile.PlayerProfile `json:"profile"`
}

// LoadProfileRequest loads the player profile.
type LoadProfileRequest struct {
	Token string `json:"token"`
}

// LoadProfileResponse carries the loaded profile. Assigned counts the fields
// restored from storage; the rest keep their zero values.
type LoadProfileResponse struct {
	Profile  profile.PlayerProfile `json:"profile"`
	Assigned int                   `json:"assigned"`
	Outcome  domain.Outcome        `json:"outcome"`
	Error    string                `json:"error,omitempty"`
}

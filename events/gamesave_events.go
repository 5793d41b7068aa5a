package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
	nanoid "github.com/jaevor/go-nanoid"
)

// operationID generates 21-character URL-safe IDs.
var operationID = mustGenerator()

func mustGenerator() func() string {
	gen, err := nanoid.Standard(21)
	if err != nil {
		panic(err)
	}
	return gen
}

// NewOperationID returns a fresh ID for one game save operation.
func NewOperationID() string {
	return operationID()
}

// ProviderInitializedEvent is emitted when a player's game save provider is
// initialized.
type ProviderInitializedEvent struct {
	OperationID string    `json:"operation_id"`
	PlayerID    string    `json:"player_id"`
	Outcome     string    `json:"outcome"`
	At          time.Time `json:"at"`
}

// ProviderInitializedV1 is the typed event definition for provider initialization.
// Subject: events.gamesave.v1.provider-initialized
var ProviderInitializedV1 = helper.EventDefinition[ProviderInitializedEvent](
	"gamesave", "ProviderInitialized", "v1",
)

// ContainerSavedEvent is emitted after a container update completes.
type ContainerSavedEvent struct {
	OperationID string    `json:"operation_id"`
	PlayerID    string    `json:"player_id"`
	Container   string    `json:"container"`
	Blobs       int       `json:"blobs"`
	Bytes       int       `json:"bytes"`
	Outcome     string    `json:"outcome"`
	At          time.Time `json:"at"`
}

// ContainerSavedV1 is the typed event definition for container saves.
// Subject: events.gamesave.v1.container-saved
var ContainerSavedV1 = helper.EventDefinition[ContainerSavedEvent](
	"gamesave", "ContainerSaved", "v1",
)

// ContainerLoadedEvent is emitted after a container read completes.
// Keys counts the requested blobs and Blobs those found.
type ContainerLoadedEvent struct {
	OperationID string    `json:"operation_id"`
	PlayerID    string    `json:"player_id"`
	Container   string    `json:"container"`
	Keys        int       `json:"keys"`
	Blobs       int       `json:"blobs"`
	Outcome     string    `json:"outcome"`
	At          time.Time `json:"at"`
}

// ContainerLoadedV1 is the typed event definition for container loads.
// Subject: events.gamesave.v1.container-loaded
var ContainerLoadedV1 = helper.EventDefinition[ContainerLoadedEvent](
	"gamesave", "ContainerLoaded", "v1",
)

// ContainerDeletedEvent is emitted after a container delete completes.
type ContainerDeletedEvent struct {
	OperationID string    `json:"operation_id"`
	PlayerID    string    `json:"player_id"`
	Container   string    `json:"container"`
	Outcome     string    `json:"outcome"`
	At          time.Time `json:"at"`
}

// ContainerDeletedV1 is the typed event definition for container deletion.
// Subject: events.gamesave.v1.container-deleted
var ContainerDeletedV1 = helper.EventDefinition[ContainerDeletedEvent](
	"gamesave", "ContainerDeleted", "v1",
)

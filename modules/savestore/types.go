package savestore

// SubmitUpdatesRequest is the request for the submit-updates service.
type SubmitUpdatesRequest struct {
	PlayerID    string            `json:"player_id"`
	Container   string            `json:"container"`
	DisplayName string            `json:"display_name"`
	Blobs       map[string][]byte `json:"blobs"`
}

// GetBlobsRequest is the request for the get-blobs service.
type GetBlobsRequest struct {
	PlayerID  string   `json:"player_id"`
	Container string   `json:"container"`
	Keys      []string `json:"keys"`
}

// GetBlobsResponse is the response for the get-blobs service.
type GetBlobsResponse struct {
	Blobs  map[string][]byte `json:"blobs,omitempty"`
	Status int32             `json:"status"`
	Error  string            `json:"error,omitempty"`
}

// DeleteContainerRequest is the request for the delete-container service.
type DeleteContainerRequest struct {
	PlayerID  string `json:"player_id"`
	Container string `json:"container"`
}

// StatusResponse is the response for services that only report a status.
// Error is set for unexpected faults.
type StatusResponse struct {
	Status int32  `json:"status"`
	Error  string `json:"error,omitempty"`
}

// UsageRequest is the request for the storage-usage service.
type UsageRequest struct {
	PlayerID string `json:"player_id"`
}

// UsageResponse is the response for the storage-usage service.
type UsageResponse struct {
	UsedBytes  int64  `json:"used_bytes"`
	QuotaBytes int64  `json:"quota_bytes"`
	Error      string `json:"error,omitempty"`
}

package savestore

import "errors"

// Sentinel errors for save store operations.
var (
	// ErrUnknownBackend is returned when SAVE_BACKEND names no known backend.
	ErrUnknownBackend = errors.New("unknown save backend")

	// ErrNotReady is returned when a request arrives before the backend is open.
	ErrNotReady = errors.New("save backend not ready")

	// ErrInvalidPlayer is returned for an empty or malformed player ID.
	ErrInvalidPlayer = errors.New("invalid player id")
)

// Package gamesavetest provides an in-memory gamesave.Provider for tests.
package gamesavetest

import (
	"context"
	"sync"

	"github.com/example/game-save-demo/domain/gamesave"
)

// Memory is a thread-safe in-memory Provider. Statuses and errors can be
// forced to exercise failure paths.
type Memory struct {
	mu         sync.Mutex
	containers map[string]gamesave.Blobs
	displays   map[string]string

	status gamesave.Status
	err    error
	panic  any

	Submits int
	Fetches int
	Deletes int
	// LastKeys holds the keys of the most recent fetch.
	LastKeys []string
}

var _ gamesave.Provider = (*Memory)(nil)

// NewMemory returns an empty provider.
func NewMemory() *Memory {
	return &Memory{
		containers: make(map[string]gamesave.Blobs),
		displays:   make(map[string]string),
	}
}

// FailWith makes every following call return status without touching data.
// StatusOK restores normal behavior.
func (m *Memory) FailWith(status gamesave.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// ErrorWith makes every following call return err. Nil restores normal behavior.
func (m *Memory) ErrorWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// PanicWith makes every following call panic with v. Nil restores normal behavior.
func (m *Memory) PanicWith(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panic = v
}

// Put stores a raw blob directly, bypassing the Provider API.
func (m *Memory) Put(container, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.containers[container] == nil {
		m.containers[container] = make(gamesave.Blobs)
	}
	m.containers[container][key] = data
}

// Blobs returns a copy of container's contents, or nil when it does not exist.
func (m *Memory) Blobs(container string) gamesave.Blobs {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.containers[container]
	if !ok {
		return nil
	}
	out := make(gamesave.Blobs, len(c))
	for k, v := range c {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// DisplayName returns the display name last submitted for container.
func (m *Memory) DisplayName(container string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.displays[container]
}

func (m *Memory) fault() (gamesave.Status, bool, error) {
	if m.panic != nil {
		panic(m.panic)
	}
	if m.err != nil {
		return gamesave.StatusOK, true, m.err
	}
	if m.status != gamesave.StatusOK {
		return m.status, true, nil
	}
	return gamesave.StatusOK, false, nil
}

func (m *Memory) SubmitUpdates(_ context.Context, container, displayName string, blobs gamesave.Blobs) (gamesave.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submits++
	if status, failed, err := m.fault(); failed {
		return status, err
	}
	c := m.containers[container]
	if c == nil {
		c = make(gamesave.Blobs)
		m.containers[container] = c
	}
	for k, v := range blobs {
		c[k] = append([]byte(nil), v...)
	}
	m.displays[container] = displayName
	return gamesave.StatusOK, nil
}

func (m *Memory) GetBlobs(_ context.Context, container string, keys []string) (gamesave.Blobs, gamesave.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches++
	m.LastKeys = append([]string(nil), keys...)
	if status, failed, err := m.fault(); failed {
		return nil, status, err
	}
	out := make(gamesave.Blobs, len(keys))
	for _, k := range keys {
		if v, ok := m.containers[container][k]; ok {
			out[k] = append([]byte(nil), v...)
		}
	}
	return out, gamesave.StatusOK, nil
}

func (m *Memory) DeleteContainer(_ context.Context, container string) (gamesave.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if status, failed, err := m.fault(); failed {
		return status, err
	}
	delete(m.containers, container)
	delete(m.displays, container)
	return gamesave.StatusOK, nil
}

package activity

import (
	"sync"
	"time"
)

// DefaultCapacity is the number of entries a journal keeps.
const DefaultCapacity = 256

// Entry is one recorded game save operation.
type Entry struct {
	OperationID string    `json:"operation_id"`
	Kind        string    `json:"kind"`
	PlayerID    string    `json:"player_id"`
	Container   string    `json:"container,omitempty"`
	Outcome     string    `json:"outcome"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	At          time.Time `json:"at"`
}

// Journal is a fixed-size ring of entries, oldest evicted first.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

// NewJournal creates a journal holding at most capacity entries.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{entries: make([]Entry, capacity)}
}

// Record appends e, evicting the oldest entry when full.
func (j *Journal) Record(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.next] = e
	j.next = (j.next + 1) % len(j.entries)
	if j.next == 0 {
		j.full = true
	}
}

// Len returns the number of stored entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.full {
		return len(j.entries)
	}
	return j.next
}

// Recent returns up to limit entries, newest first. An empty playerID
// matches every player and a non-positive limit returns all matches.
func (j *Journal) Recent(playerID string, limit int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := j.next
	if j.full {
		n = len(j.entries)
	}

	result := make([]Entry, 0)
	for i := 0; i < n; i++ {
		idx := (j.next - 1 - i + len(j.entries)) % len(j.entries)
		e := j.entries[idx]
		if playerID != "" && e.PlayerID != playerID {
			continue
		}
		result = append(result, e)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

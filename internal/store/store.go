// Package store keeps scraped metric snapshots in memory for agent mode.
package store

import (
	"sync"
	"time"

	"github.com/cassmon/cassmon/internal/probe"
)

// Snapshot is one full scrape of the configured categories.
type Snapshot struct {
	ID         string                    `json:"id"`
	Target     string                    `json:"target"`
	Timestamp  time.Time                 `json:"timestamp"`
	Categories map[string][]probe.Metric `json:"categories"`
}

// SnapshotStore holds the latest snapshot plus a bounded history.
type SnapshotStore struct {
	mu      sync.RWMutex
	history []*Snapshot
	limit   int
}

// NewSnapshotStore creates a store keeping at most limit snapshots.
func NewSnapshotStore(limit int) *SnapshotStore {
	if limit < 1 {
		limit = 1
	}
	return &SnapshotStore{limit: limit}
}

// Put records a snapshot, evicting the oldest when over the limit.
func (s *SnapshotStore) Put(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, snap)
	if len(s.history) > s.limit {
		s.history = s.history[len(s.history)-s.limit:]
	}
}

// Latest returns the most recent snapshot, or nil before the first scrape.
func (s *SnapshotStore) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

// History returns up to limit snapshots, newest first. limit <= 0 returns
// everything retained.
func (s *SnapshotStore) History(limit int) []*Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*Snapshot, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.history[i])
	}
	return out
}

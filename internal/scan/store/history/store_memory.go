// Package history keeps the bounded per-organization log of recent scans.
package history

import (
	"context"
	"sync"

	"scanid/internal/scan/models"
	"scanid/pkg/domain"
)

// InMemoryStore is the fallback history store used in tests and when redis is
// not configured. Single-process only.
type InMemoryStore struct {
	mu      sync.RWMutex
	cap     int
	entries map[domain.OrganizationID][]models.HistoryEntry
}

// InMemoryStoreOption configures an InMemoryStore instance.
type InMemoryStoreOption func(*InMemoryStore)

// WithMemoryCap overrides the per-organization entry cap.
func WithMemoryCap(n int) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.cap = n
		}
	}
}

// NewInMemoryStore constructs an in-memory scan history store.
func NewInMemoryStore(opts ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{
		cap:     DefaultCap,
		entries: make(map[domain.OrganizationID][]models.HistoryEntry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Record prepends the entry and drops anything past the cap.
func (s *InMemoryStore) Record(_ context.Context, orgID domain.OrganizationID, entry models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]models.HistoryEntry{entry}, s.entries[orgID]...)
	if len(list) > s.cap {
		list = list[:s.cap]
	}
	s.entries[orgID] = list
	return nil
}

// List returns the most recent entries, newest first, at most limit.
func (s *InMemoryStore) List(_ context.Context, orgID domain.OrganizationID, limit int) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.entries[orgID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]models.HistoryEntry, limit)
	copy(out, list[:limit])
	return out, nil
}

// Package catalog stores the assigned-barcode set per organization.
package catalog

import (
	"context"
	"sync"

	"scanid/internal/barcode/models"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

// ErrAlreadyAssigned is returned when a barcode loses the persistence race.
// Callers treat it as the signal to retry allocation past the lost sequence.
var ErrAlreadyAssigned = dErrors.New(dErrors.CodeConflict, "barcode already assigned in organization")

// InMemoryStore implements the catalog store with a mutex-guarded map. Used
// in tests and when postgres is not configured. Assign is atomic under the
// lock, so it provides the same uniqueness guarantee as the database
// constraint within a single process.
type InMemoryStore struct {
	mu       sync.RWMutex
	assigned map[domain.OrganizationID]map[string]models.AssignedBarcode
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		assigned: make(map[domain.OrganizationID]map[string]models.AssignedBarcode),
	}
}

func (s *InMemoryStore) IsTaken(_ context.Context, orgID domain.OrganizationID, barcode string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, taken := s.assigned[orgID][barcode]
	return taken, nil
}

func (s *InMemoryStore) Assign(_ context.Context, rec models.AssignedBarcode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byOrg := s.assigned[rec.OrganizationID]
	if byOrg == nil {
		byOrg = make(map[string]models.AssignedBarcode)
		s.assigned[rec.OrganizationID] = byOrg
	}
	if _, exists := byOrg[rec.Barcode]; exists {
		return ErrAlreadyAssigned
	}
	byOrg[rec.Barcode] = rec
	return nil
}

// Preassign seeds a barcode without conflict checking. Test helper.
func (s *InMemoryStore) Preassign(rec models.AssignedBarcode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byOrg := s.assigned[rec.OrganizationID]
	if byOrg == nil {
		byOrg = make(map[string]models.AssignedBarcode)
		s.assigned[rec.OrganizationID] = byOrg
	}
	byOrg[rec.Barcode] = rec
}

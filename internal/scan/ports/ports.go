// Package ports defines the external dependencies of the scan module.
package ports

import (
	"context"

	"scanid/internal/audit"
	"scanid/internal/scan/models"
	"scanid/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks LookupService,HistoryStore

// LookupService searches the product catalog for a normalized query. The
// catalog itself lives in another system; this module only classifies what
// comes back.
type LookupService interface {
	// Lookup returns candidate items for the query. An empty Items slice is a
	// valid answer, not an error; errors are reserved for transport and
	// upstream failures.
	Lookup(ctx context.Context, organizationID domain.OrganizationID, scanCtx models.Context, query string) (models.LookupResult, error)
}

// HistoryStore keeps a bounded per-organization log of recent scans.
type HistoryStore interface {
	// Record appends an entry, evicting the oldest entries past the store's cap.
	Record(ctx context.Context, organizationID domain.OrganizationID, entry models.HistoryEntry) error

	// List returns the most recent entries, newest first, at most limit.
	List(ctx context.Context, organizationID domain.OrganizationID, limit int) ([]models.HistoryEntry, error)
}

// AuditPublisher emits audit events for resolved scans.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Package ports defines shared interfaces for the barcode module.
package ports

import (
	"context"

	"scanid/internal/audit"
	"scanid/internal/barcode/models"
	"scanid/pkg/domain"
)

// CatalogStore owns the durable set of assigned barcodes. It is the only
// durable state the barcode module depends on.
type CatalogStore interface {
	// IsTaken reports whether a barcode is already assigned within the
	// organization. Must be safe to call repeatedly and rapidly; the
	// allocator probes it up to its probe bound.
	IsTaken(ctx context.Context, organizationID domain.OrganizationID, barcode string) (bool, error)

	// Assign durably binds a barcode to a product. Implementations must
	// enforce uniqueness per (organization, barcode) and return a
	// CodeConflict domain error when the barcode is already assigned; that
	// conflict drives the caller's retry with a fresh start sequence.
	Assign(ctx context.Context, rec models.AssignedBarcode) error
}

// AuditPublisher emits audit events for allocation operations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

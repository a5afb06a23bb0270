// Package audit captures structured operational events emitted by the scan
// and barcode services. Events are append-only.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scanid/pkg/domain"
)

// Actions emitted by this service.
const (
	EventScanResolved     = "scan_resolved"
	EventBarcodeAllocated = "barcode_allocated"
	EventBarcodeExhausted = "barcode_allocation_exhausted"
)

// Event is a single audit record.
type Event struct {
	ID             uuid.UUID             `json:"id"`
	OrganizationID domain.OrganizationID `json:"organization_id"`
	Action         string                `json:"action"`
	Metadata       map[string]string     `json:"metadata,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByOrganization(ctx context.Context, orgID domain.OrganizationID) ([]Event, error)
}

// Publisher is the write side consumed by feature services.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

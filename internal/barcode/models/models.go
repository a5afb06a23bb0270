// Package models defines barcode value types shared across the barcode module.
package models

import (
	"time"

	"scanid/pkg/domain"
)

// Mode selects the generation scheme for new barcodes. Only EAN-13 is
// implemented today; the allocation algorithm is mode-agnostic so other
// symbologies slot in without changing its shape.
type Mode string

const (
	ModeEAN13 Mode = "EAN13"
)

// IsValid reports whether the mode is a known generation scheme.
func (m Mode) IsValid() bool {
	return m == ModeEAN13
}

// Symbology is the rendering scheme for a barcode value.
type Symbology string

const (
	SymbologyEAN13   Symbology = "ean13"
	SymbologyCode128 Symbology = "code128"
)

// RenderSpec tells the rendering layer how to draw a value. Derived, never
// persisted; recomputed on every render.
type RenderSpec struct {
	Symbology Symbology `json:"symbology"`
	Text      string    `json:"text"`
}

// AssignedBarcode is a durable record of a barcode bound to a product within
// an organization. The assigned set is the only durable state the barcode
// module owns.
type AssignedBarcode struct {
	OrganizationID domain.OrganizationID
	Barcode        string
	ProductID      domain.ProductID
	AssignedAt     time.Time
}

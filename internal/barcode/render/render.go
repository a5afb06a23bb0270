// Package render resolves which symbology to draw a barcode value with.
package render

import (
	"scanid/internal/barcode/ean13"
	"scanid/internal/barcode/models"
)

// Resolve picks the symbology for a value. Valid EAN-13 strings render as
// EAN-13; everything else falls back to CODE128, which encodes arbitrary
// printable text and covers SKUs, alphanumeric codes and malformed
// EAN-looking strings. Total; every string has a render spec.
func Resolve(value string) models.RenderSpec {
	if ean13.IsValid(value) {
		return models.RenderSpec{Symbology: models.SymbologyEAN13, Text: value}
	}
	return models.RenderSpec{Symbology: models.SymbologyCode128, Text: value}
}

package handler

import (
	"strings"

	"scanid/internal/barcode/models"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

// AllocateRequest is the HTTP request body for POST /barcodes/allocate.
type AllocateRequest struct {
	ProductID string `json:"product_id"`
	Mode      string `json:"mode"`

	// Parsed values (populated by Validate)
	parsedProductID domain.ProductID
	parsedMode      models.Mode
}

// Validate validates and parses the request.
func (r *AllocateRequest) Validate() error {
	r.ProductID = strings.TrimSpace(r.ProductID)
	if r.ProductID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "product_id is required")
	}
	productID, err := domain.ParseProductID(r.ProductID)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "product_id must be a valid UUID")
	}
	r.parsedProductID = productID

	mode := models.Mode(strings.TrimSpace(r.Mode))
	if mode == "" {
		mode = models.ModeEAN13
	}
	if !mode.IsValid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown barcode mode %q", r.Mode)
	}
	r.parsedMode = mode

	return nil
}

// ParsedProductID returns the validated product ID.
func (r *AllocateRequest) ParsedProductID() domain.ProductID {
	return r.parsedProductID
}

// ParsedMode returns the validated generation mode.
func (r *AllocateRequest) ParsedMode() models.Mode {
	return r.parsedMode
}

// ValidateRequest is the HTTP request body for POST /barcodes/validate.
type ValidateRequest struct {
	Value string `json:"value"`
}

// Validate checks the request shape. The value itself is judged by the
// service; an ill-formed barcode is a valid question to ask.
func (r *ValidateRequest) Validate() error {
	if r.Value == "" {
		return dErrors.New(dErrors.CodeBadRequest, "value is required")
	}
	return nil
}

package handler

import (
	"scanid/internal/scan/models"
	dErrors "scanid/pkg/domain-errors"
)

// maxInputLength rejects obviously broken scanner payloads before they reach
// the pipeline.
const maxInputLength = 1024

// ScanRequest is the HTTP request body for POST /scan.
type ScanRequest struct {
	Input             string `json:"input"`
	Context           string `json:"context,omitempty"`
	Key               string `json:"key,omitempty"`
	SupportsTabSubmit bool   `json:"supportsTabSubmit,omitempty"`
}

// Validate checks the request shape. Contexts and keys are judged by the
// service; only size limits live here.
func (r *ScanRequest) Validate() error {
	if len(r.Input) > maxInputLength {
		return dErrors.Newf(dErrors.CodeBadRequest, "input must be at most %d bytes", maxInputLength)
	}
	if r.Context != "" && !models.Context(r.Context).IsValid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown scan context %q", r.Context)
	}
	return nil
}

package handler

import (
	"scanid/internal/barcode/models"
	"scanid/internal/barcode/service"
)

// AllocateResponse is the HTTP response for POST /barcodes/allocate.
type AllocateResponse struct {
	Barcode    string             `json:"barcode"`
	RenderSpec RenderSpecResponse `json:"render_spec"`
}

// RenderSpecResponse describes how a value should be rendered.
type RenderSpecResponse struct {
	Symbology string `json:"symbology"`
	Text      string `json:"text"`
}

// ValidateResponse is the HTTP response for POST /barcodes/validate.
type ValidateResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// FromAllocation converts a domain Allocation to an HTTP response.
func FromAllocation(alloc *service.Allocation) *AllocateResponse {
	return &AllocateResponse{
		Barcode:    alloc.Barcode,
		RenderSpec: FromRenderSpec(alloc.RenderSpec),
	}
}

// FromRenderSpec converts a domain RenderSpec to its HTTP shape.
func FromRenderSpec(spec models.RenderSpec) RenderSpecResponse {
	return RenderSpecResponse{
		Symbology: string(spec.Symbology),
		Text:      spec.Text,
	}
}

package handler

import (
	"scanid/internal/scan/models"
)

// ScanResponse is the HTTP response for POST /scan. Exactly one of Item and
// Items is set for exact and multiple outcomes; both are absent for notFound.
type ScanResponse struct {
	Outcome string              `json:"outcome"`
	Input   string              `json:"input"`
	Context string              `json:"context"`
	Trigger string              `json:"trigger,omitempty"`
	Item    *models.LookupItem  `json:"item,omitempty"`
	Items   []models.LookupItem `json:"items,omitempty"`
}

// HistoryResponse is the HTTP response for GET /scan/history.
type HistoryResponse struct {
	Entries []models.HistoryEntry `json:"entries"`
}

// FromResolved converts a resolution outcome to its HTTP shape.
func FromResolved(result models.ResolvedResult) *ScanResponse {
	resp := &ScanResponse{Outcome: string(result.Outcome())}

	switch r := result.(type) {
	case models.Exact:
		resp.Input = r.Input
		resp.Context = string(r.Context)
		resp.Trigger = string(r.Trigger)
		item := r.Item
		resp.Item = &item
	case models.Multiple:
		resp.Input = r.Input
		resp.Context = string(r.Context)
		resp.Trigger = string(r.Trigger)
		resp.Items = r.Items
	case models.NotFound:
		resp.Input = r.Input
		resp.Context = string(r.Context)
		resp.Trigger = string(r.Trigger)
	}
	return resp
}

package models

import "time"

// HistoryEntry is one resolved scan, as kept in the per-organization recent
// history. Items are not retained; the outcome tag and the matched item count
// are enough for the history views that exist today.
type HistoryEntry struct {
	Input     string    `json:"input"`
	Context   Context   `json:"context"`
	Trigger   Trigger   `json:"trigger,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	ItemCount int       `json:"itemCount"`
	ScannedAt time.Time `json:"scannedAt"`
}

// Package models defines the value types flowing through the scan resolution
// pipeline. Everything here is transient and request-scoped; nothing is
// persisted by the scan path itself.
package models

// Context identifies the UI surface a scan occurred in. It is carried through
// for downstream routing only; the resolution core never branches on it.
type Context string

const (
	ContextGlobal       Context = "global"
	ContextCommandPanel Context = "commandPanel"
	ContextStockCount   Context = "stockCount"
	ContextPOS          Context = "pos"
	ContextLinePicker   Context = "linePicker"
)

// IsValid reports whether the context is one of the known surfaces.
func (c Context) IsValid() bool {
	switch c {
	case ContextGlobal, ContextCommandPanel, ContextStockCount, ContextPOS, ContextLinePicker:
		return true
	}
	return false
}

// Trigger records which keystroke caused a buffer to be submitted as a query.
type Trigger string

const (
	TriggerEnter Trigger = "enter"
	TriggerTab   Trigger = "tab"
	// TriggerNone means the keystroke is ordinary input or navigation.
	TriggerNone Trigger = ""
)

// MatchType reports which field of a catalog item the lookup matched on.
type MatchType string

const (
	MatchBarcode MatchType = "barcode"
	MatchSKU     MatchType = "sku"
	MatchName    MatchType = "name"
)

// ProductType discriminates simple products from bundles.
type ProductType string

const (
	TypeProduct ProductType = "product"
	TypeBundle  ProductType = "bundle"
)

// LookupItem is a catalog item returned by the lookup service. The scan core
// only reads it; ownership stays with the lookup service.
type LookupItem struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	SKU          string      `json:"sku"`
	MatchType    MatchType   `json:"matchType"`
	Type         ProductType `json:"type"`
	PrimaryImage string      `json:"primaryImage,omitempty"`
}

// LookupResult is the raw response from the lookup service. ExactMatch is a
// claim the resolver verifies against the item count rather than trusting.
type LookupResult struct {
	ExactMatch bool         `json:"exactMatch"`
	Items      []LookupItem `json:"items"`
}

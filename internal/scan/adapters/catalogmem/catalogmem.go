// Package catalogmem implements the catalog lookup port over an in-memory
// product set. It backs local development and tests when no catalog service
// is configured.
package catalogmem

import (
	"context"
	"strings"
	"sync"

	"scanid/internal/scan/models"
	"scanid/pkg/domain"
)

// Product is one seeded catalog entry.
type Product struct {
	ID       string
	Name     string
	SKU      string
	Barcodes []string
	Type     models.ProductType
}

// Catalog is a per-organization in-memory product catalog.
type Catalog struct {
	mu       sync.RWMutex
	products map[domain.OrganizationID][]Product
}

// NewCatalog constructs an empty in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{products: make(map[domain.OrganizationID][]Product)}
}

// Seed adds products to an organization's catalog.
func (c *Catalog) Seed(orgID domain.OrganizationID, products ...Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[orgID] = append(c.products[orgID], products...)
}

// Lookup searches barcodes and SKUs exactly and names by case-insensitive
// substring. A single barcode or SKU hit reports an exact match; name hits
// never do, however few there are.
func (c *Catalog) Lookup(_ context.Context, orgID domain.OrganizationID, _ models.Context, query string) (models.LookupResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		items      []models.LookupItem
		exactCount int
	)
	lowered := strings.ToLower(query)

	for _, p := range c.products[orgID] {
		switch {
		case hasBarcode(p, query):
			items = append(items, toItem(p, models.MatchBarcode))
			exactCount++
		case strings.EqualFold(p.SKU, query):
			items = append(items, toItem(p, models.MatchSKU))
			exactCount++
		case strings.Contains(strings.ToLower(p.Name), lowered):
			items = append(items, toItem(p, models.MatchName))
		}
	}

	return models.LookupResult{
		ExactMatch: exactCount == 1 && len(items) == 1,
		Items:      items,
	}, nil
}

func hasBarcode(p Product, query string) bool {
	for _, b := range p.Barcodes {
		if b == query {
			return true
		}
	}
	return false
}

func toItem(p Product, match models.MatchType) models.LookupItem {
	productType := p.Type
	if productType == "" {
		productType = models.TypeProduct
	}
	return models.LookupItem{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		MatchType: match,
		Type:      productType,
	}
}

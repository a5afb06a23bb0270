package catalogmem

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanid/internal/scan/models"
	"scanid/pkg/domain"
)

func seededCatalog(orgID domain.OrganizationID) *Catalog {
	c := NewCatalog()
	c.Seed(orgID,
		Product{ID: "p1", Name: "Cola 0.5L", SKU: "COLA-05", Barcodes: []string{"5901234123457"}},
		Product{ID: "p2", Name: "Cola 1L", SKU: "COLA-10", Barcodes: []string{"4006381333931"}},
		Product{ID: "b1", Name: "Cola Party Bundle", SKU: "COLA-BNDL", Type: models.TypeBundle},
	)
	return c
}

func TestCatalog_Lookup(t *testing.T) {
	ctx := context.Background()
	orgID := domain.OrganizationID(uuid.New())
	catalog := seededCatalog(orgID)

	t.Run("barcode hit is exact", func(t *testing.T) {
		result, err := catalog.Lookup(ctx, orgID, models.ContextPOS, "5901234123457")
		require.NoError(t, err)
		assert.True(t, result.ExactMatch)
		require.Len(t, result.Items, 1)
		assert.Equal(t, models.MatchBarcode, result.Items[0].MatchType)
	})

	t.Run("sku hit is exact and case-insensitive", func(t *testing.T) {
		result, err := catalog.Lookup(ctx, orgID, models.ContextPOS, "cola-05")
		require.NoError(t, err)
		assert.True(t, result.ExactMatch)
		require.Len(t, result.Items, 1)
		assert.Equal(t, models.MatchSKU, result.Items[0].MatchType)
	})

	t.Run("name substring is never exact", func(t *testing.T) {
		result, err := catalog.Lookup(ctx, orgID, models.ContextPOS, "cola")
		require.NoError(t, err)
		assert.False(t, result.ExactMatch)
		assert.Len(t, result.Items, 3)
	})

	t.Run("bundle keeps its type", func(t *testing.T) {
		result, err := catalog.Lookup(ctx, orgID, models.ContextPOS, "COLA-BNDL")
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, models.TypeBundle, result.Items[0].Type)
	})

	t.Run("no match", func(t *testing.T) {
		result, err := catalog.Lookup(ctx, orgID, models.ContextPOS, "nosuch")
		require.NoError(t, err)
		assert.False(t, result.ExactMatch)
		assert.Empty(t, result.Items)
	})

	t.Run("organizations are isolated", func(t *testing.T) {
		result, err := catalog.Lookup(ctx, domain.OrganizationID(uuid.New()), models.ContextPOS, "5901234123457")
		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanid/internal/barcode/models"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	orgA := domain.OrganizationID(uuid.New())
	orgB := domain.OrganizationID(uuid.New())

	rec := models.AssignedBarcode{
		OrganizationID: orgA,
		Barcode:        "5901234123457",
		ProductID:      domain.ProductID(uuid.New()),
		AssignedAt:     time.Now(),
	}

	t.Run("unassigned barcode is not taken", func(t *testing.T) {
		store := NewInMemoryStore()
		taken, err := store.IsTaken(ctx, orgA, rec.Barcode)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("assign then taken", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Assign(ctx, rec))

		taken, err := store.IsTaken(ctx, orgA, rec.Barcode)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("duplicate assign conflicts", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Assign(ctx, rec))

		err := store.Assign(ctx, rec)
		require.ErrorIs(t, err, ErrAlreadyAssigned)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("uniqueness is scoped per organization", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Assign(ctx, rec))

		other := rec
		other.OrganizationID = orgB
		assert.NoError(t, store.Assign(ctx, other))

		taken, err := store.IsTaken(ctx, orgB, rec.Barcode)
		require.NoError(t, err)
		assert.True(t, taken)
	})
}

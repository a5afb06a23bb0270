package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "scanid/pkg/domain-errors"
)

// TestParseOrganizationID_Invariants validates the parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseOrganizationID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseOrganizationID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseOrganizationID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseOrganizationID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseOrganizationID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, OrganizationID(valid), id)
	})
}

func TestParseProductID(t *testing.T) {
	t.Run("round trips through String", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseProductID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, valid.String(), id.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseProductID("sku-123")
		require.Error(t, err)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety between ID
// kinds. If this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	orgID := OrganizationID(uuid.New())
	productID := ProductID(uuid.New())

	assert.NotEqual(t, orgID.String(), productID.String())
}

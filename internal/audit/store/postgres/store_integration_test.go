//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanid/internal/audit"
	auditpostgres "scanid/internal/audit/store/postgres"
	"scanid/internal/barcode/store/catalog"
	"scanid/pkg/domain"
	"scanid/pkg/testutil/containers"
)

func TestStore_AppendAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	pg.Apply(t, catalog.Schema)

	store, db, err := auditpostgres.Open(pg.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	orgID := domain.OrganizationID(uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	events := []audit.Event{
		{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Action:         audit.EventScanResolved,
			Metadata:       map[string]string{"outcome": "exact"},
			Timestamp:      base,
		},
		{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Action:         audit.EventBarcodeAllocated,
			Metadata:       map[string]string{"barcode": "5901234123457"},
			Timestamp:      base.Add(time.Second),
		},
	}
	for _, e := range events {
		require.NoError(t, store.Append(ctx, e))
	}

	// An event for another organization must not appear in the listing.
	require.NoError(t, store.Append(ctx, audit.Event{
		ID:             uuid.New(),
		OrganizationID: domain.OrganizationID(uuid.New()),
		Action:         audit.EventScanResolved,
		Timestamp:      base,
	}))

	got, err := store.ListByOrganization(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, audit.EventScanResolved, got[0].Action, "ordered oldest first")
	assert.Equal(t, "exact", got[0].Metadata["outcome"])
	assert.Equal(t, audit.EventBarcodeAllocated, got[1].Action)
	assert.Equal(t, "5901234123457", got[1].Metadata["barcode"])
}

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanid/internal/audit"
	"scanid/internal/audit/store/memory"
	"scanid/pkg/domain"
)

func TestStorePublisher(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := audit.NewStorePublisher(store)
	orgID := domain.OrganizationID(uuid.New())

	err := pub.Emit(context.Background(), audit.Event{
		OrganizationID: orgID,
		Action:         audit.EventScanResolved,
		Metadata:       map[string]string{"outcome": "exact"},
	})
	require.NoError(t, err)

	events, err := store.ListByOrganization(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.EventScanResolved, events[0].Action)
	assert.NotEqual(t, uuid.Nil, events[0].ID, "publisher must stamp an ID")
	assert.False(t, events[0].Timestamp.IsZero(), "publisher must stamp a timestamp")
}

func TestChannelPublisherAndWorker(t *testing.T) {
	store := memory.NewInMemoryStore()
	inbox := make(chan audit.Event, 16)
	pub := audit.NewChannelPublisher(inbox)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := audit.NewWorker(store, inbox, testLogger())
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	orgID := domain.OrganizationID(uuid.New())
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		OrganizationID: orgID,
		Action:         audit.EventBarcodeAllocated,
	}))

	assert.Eventually(t, func() bool {
		events, err := store.ListByOrganization(context.Background(), orgID)
		return err == nil && len(events) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestChannelPublisher_FullBufferDrops(t *testing.T) {
	inbox := make(chan audit.Event, 1)
	pub := audit.NewChannelPublisher(inbox)

	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "a"}))
	// No worker draining; second emit must not block.
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: "b"}))
	assert.Len(t, inbox, 1)
}

func TestFanout(t *testing.T) {
	first := memory.NewInMemoryStore()
	second := memory.NewInMemoryStore()
	pub := audit.Fanout{audit.NewStorePublisher(first), audit.NewStorePublisher(second)}
	orgID := domain.OrganizationID(uuid.New())

	require.NoError(t, pub.Emit(context.Background(), audit.Event{OrganizationID: orgID, Action: "x"}))

	for _, store := range []*memory.InMemoryStore{first, second} {
		events, err := store.ListByOrganization(context.Background(), orgID)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	}
}

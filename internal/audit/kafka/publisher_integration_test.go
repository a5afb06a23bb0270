//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"scanid/internal/audit"
	auditkafka "scanid/internal/audit/kafka"
	"scanid/pkg/domain"
	"scanid/pkg/testutil/containers"
)

const testTopic = "scanid.audit.events.test"

func TestPublisher_EmitRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redpanda := containers.NewRedpandaContainer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	publisher, err := auditkafka.NewPublisher(ctx, redpanda.Brokers, testTopic, logger)
	require.NoError(t, err)

	orgID := domain.OrganizationID(uuid.New())
	event := audit.Event{
		OrganizationID: orgID,
		Action:         audit.EventScanResolved,
		Metadata:       map[string]string{"outcome": "exact"},
	}
	require.NoError(t, publisher.Emit(ctx, event))
	require.NoError(t, publisher.Close(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Brokers...),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, orgID.String(), string(records[0].Key), "keyed by organization")

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, audit.EventScanResolved, got.Action)
	assert.Equal(t, orgID, got.OrganizationID)
	assert.NotEqual(t, uuid.Nil, got.ID, "publisher stamps the event")
	assert.False(t, got.Timestamp.IsZero())
	assert.Equal(t, "exact", got.Metadata["outcome"])
}

func TestNewPublisher_TopicAlreadyExists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redpanda := containers.NewRedpandaContainer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first, err := auditkafka.NewPublisher(ctx, redpanda.Brokers, testTopic, logger)
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second, err := auditkafka.NewPublisher(ctx, redpanda.Brokers, testTopic, logger)
	require.NoError(t, err, "re-ensuring an existing topic is not an error")
	require.NoError(t, second.Close(ctx))
}

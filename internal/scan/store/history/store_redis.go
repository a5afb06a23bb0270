package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"scanid/internal/scan/models"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

const (
	// Redis key prefix for per-organization scan history lists
	historyKeyPrefix = "scan:history:"

	// DefaultCap bounds how many entries an organization's history keeps.
	DefaultCap = 100

	// DefaultTTL expires a history list that sees no new scans.
	DefaultTTL = 7 * 24 * time.Hour
)

// RedisStore is a Redis-backed scan history, the production implementation
// for deployments where multiple instances serve the same organization.
// Entries live in a capped list, newest first.
type RedisStore struct {
	client *redis.Client
	cap    int64
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithCap overrides the per-organization entry cap.
func WithCap(n int) RedisStoreOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.cap = int64(n)
		}
	}
}

// WithTTL overrides the idle expiry of a history list.
func WithTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore constructs a Redis-backed scan history store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		cap:    DefaultCap,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func historyKey(orgID domain.OrganizationID) string {
	return historyKeyPrefix + orgID.String()
}

// Record pushes the entry and trims the list to the cap. Push, trim and
// expiry run in one pipeline so a crash cannot leave an unbounded list.
func (s *RedisStore) Record(ctx context.Context, orgID domain.OrganizationID, entry models.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode history entry")
	}

	key := historyKey(orgID)
	pipe := s.client.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, s.cap-1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to record scan history")
	}
	return nil
}

// List returns the most recent entries, newest first. Entries that no longer
// decode are skipped rather than failing the whole read.
func (s *RedisStore) List(ctx context.Context, orgID domain.OrganizationID, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || int64(limit) > s.cap {
		limit = int(s.cap)
	}

	raw, err := s.client.LRange(ctx, historyKey(orgID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read scan history")
	}

	entries := make([]models.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

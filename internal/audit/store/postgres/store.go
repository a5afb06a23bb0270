// Package postgres persists audit events in PostgreSQL via database/sql.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"scanid/internal/audit"
	"scanid/pkg/domain"
)

// Store is the PostgreSQL-backed audit store.
type Store struct {
	db *sql.DB
}

// New constructs a Store over an existing database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to postgres with the pq driver and returns a Store.
func Open(url string) (*Store, *sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return New(db), db, nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, organization_id, action, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID, uuid.UUID(event.OrganizationID), event.Action, metadata, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Store) ListByOrganization(ctx context.Context, orgID domain.OrganizationID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization_id, action, metadata, created_at
		FROM audit_events
		WHERE organization_id = $1
		ORDER BY created_at ASC`,
		uuid.UUID(orgID),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			eventOrg uuid.UUID
			metadata []byte
		)
		if err := rows.Scan(&event.ID, &eventOrg, &event.Action, &metadata, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.OrganizationID = domain.OrganizationID(eventOrg)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"scanid/internal/barcode/models"
	"scanid/pkg/domain"
)

// Schema is the DDL for the assigned_barcodes and audit_events tables.
//
//go:embed schema.sql
var Schema string

// uniqueViolation is the postgres SQLSTATE raised when the assigned_barcodes
// unique constraint rejects a duplicate.
const uniqueViolation = "23505"

// PostgresStore persists assigned barcodes in PostgreSQL. The
// (organization_id, barcode) unique constraint is the system's actual
// uniqueness guarantee; the allocator's probing only keeps conflicts rare.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) IsTaken(ctx context.Context, orgID domain.OrganizationID, barcode string) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM assigned_barcodes
			WHERE organization_id = $1 AND barcode = $2
		)`,
		uuid.UUID(orgID), barcode,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check barcode taken: %w", err)
	}
	return taken, nil
}

func (s *PostgresStore) Assign(ctx context.Context, rec models.AssignedBarcode) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO assigned_barcodes (organization_id, barcode, product_id, assigned_at)
		VALUES ($1, $2, $3, $4)`,
		uuid.UUID(rec.OrganizationID), rec.Barcode, uuid.UUID(rec.ProductID), rec.AssignedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("assign barcode: %w", err)
	}
	return nil
}

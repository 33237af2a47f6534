// Package repository provides grant persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// PostgreSQLGrantRepository stores grants as one moderator_grants row per key.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// Get reads every key of a moderator. No rows yields an empty grant.
func (p *PostgreSQLGrantRepository) Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT capability_id, kind, enabled, updated_at FROM moderator_grants
			  WHERE moderator_id = $1 ORDER BY capability_id`

	rows, err := querier.QueryContext(ctx, query, moderatorID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get moderator grant")
	}
	defer rows.Close() //nolint:errcheck

	return scanGrant(rows, moderatorID)
}

// Upsert writes a single key with ON CONFLICT DO UPDATE.
func (p *PostgreSQLGrantRepository) Upsert(
	ctx context.Context,
	moderatorID, id string,
	kind permissionDomain.Kind,
	enabled bool,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO moderator_grants (moderator_id, capability_id, kind, enabled, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (moderator_id, capability_id)
			  DO UPDATE SET kind = EXCLUDED.kind, enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(ctx, query, moderatorID, id, string(kind), enabled, updatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert moderator grant")
	}
	return nil
}

// DeleteAll removes every key of a moderator.
func (p *PostgreSQLGrantRepository) DeleteAll(ctx context.Context, moderatorID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM moderator_grants WHERE moderator_id = $1`

	if _, err := querier.ExecContext(ctx, query, moderatorID); err != nil {
		return apperrors.Wrap(err, "failed to delete moderator grant")
	}
	return nil
}

// Insert writes every key of the grant in key order.
func (p *PostgreSQLGrantRepository) Insert(
	ctx context.Context,
	grant *permissionDomain.Grant,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO moderator_grants (moderator_id, capability_id, kind, enabled, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	for _, row := range grantRows(grant) {
		_, err := querier.ExecContext(ctx, query, grant.ModeratorID, row.id, string(row.kind), row.enabled, updatedAt)
		if err != nil {
			return apperrors.Wrapf(err, "failed to insert moderator grant key %s", row.id)
		}
	}
	return nil
}

// NewPostgreSQLGrantRepository creates a new PostgreSQL grant repository.
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{db: db}
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// MySQLGrantRepository stores grants as one moderator_grants row per key.
type MySQLGrantRepository struct {
	db *sql.DB
}

// Get reads every key of a moderator. No rows yields an empty grant.
func (m *MySQLGrantRepository) Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT capability_id, kind, enabled, updated_at FROM moderator_grants
			  WHERE moderator_id = ? ORDER BY capability_id`

	rows, err := querier.QueryContext(ctx, query, moderatorID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get moderator grant")
	}
	defer rows.Close() //nolint:errcheck

	return scanGrant(rows, moderatorID)
}

// Upsert writes a single key with ON DUPLICATE KEY UPDATE.
func (m *MySQLGrantRepository) Upsert(
	ctx context.Context,
	moderatorID, id string,
	kind permissionDomain.Kind,
	enabled bool,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO moderator_grants (moderator_id, capability_id, kind, enabled, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE kind = VALUES(kind), enabled = VALUES(enabled), updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(ctx, query, moderatorID, id, string(kind), enabled, updatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert moderator grant")
	}
	return nil
}

// DeleteAll removes every key of a moderator.
func (m *MySQLGrantRepository) DeleteAll(ctx context.Context, moderatorID string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM moderator_grants WHERE moderator_id = ?`

	if _, err := querier.ExecContext(ctx, query, moderatorID); err != nil {
		return apperrors.Wrap(err, "failed to delete moderator grant")
	}
	return nil
}

// Insert writes every key of the grant in key order.
func (m *MySQLGrantRepository) Insert(
	ctx context.Context,
	grant *permissionDomain.Grant,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO moderator_grants (moderator_id, capability_id, kind, enabled, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	for _, row := range grantRows(grant) {
		_, err := querier.ExecContext(ctx, query, grant.ModeratorID, row.id, string(row.kind), row.enabled, updatedAt)
		if err != nil {
			return apperrors.Wrapf(err, "failed to insert moderator grant key %s", row.id)
		}
	}
	return nil
}

// NewMySQLGrantRepository creates a new MySQL grant repository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}

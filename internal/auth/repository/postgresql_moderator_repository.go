// Package repository implements moderator, token and audit log persistence for
// PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

const moderatorColumns = `id, name, secret, is_active, is_root, failed_attempts, locked_until, created_at`

// PostgreSQLModeratorRepository implements Moderator persistence for PostgreSQL.
type PostgreSQLModeratorRepository struct {
	db *sql.DB
}

func (p *PostgreSQLModeratorRepository) Create(ctx context.Context, moderator *authDomain.Moderator) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO moderators (` + moderatorColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		moderator.ID,
		moderator.Name,
		moderator.Secret,
		moderator.IsActive,
		moderator.IsRoot,
		moderator.FailedAttempts,
		moderator.LockedUntil,
		moderator.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create moderator")
	}
	return nil
}

func (p *PostgreSQLModeratorRepository) Update(ctx context.Context, moderator *authDomain.Moderator) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE moderators SET name = $1, is_active = $2, is_root = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, moderator.Name, moderator.IsActive, moderator.IsRoot, moderator.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update moderator")
	}
	return requireRow(result, "failed to update moderator")
}

// Get retrieves a moderator by ID. Returns ErrModeratorNotFound if it doesn't exist.
func (p *PostgreSQLModeratorRepository) Get(
	ctx context.Context,
	moderatorID uuid.UUID,
) (*authDomain.Moderator, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + moderatorColumns + ` FROM moderators WHERE id = $1`

	var moderator authDomain.Moderator
	err := querier.QueryRowContext(ctx, query, moderatorID).Scan(
		&moderator.ID,
		&moderator.Name,
		&moderator.Secret,
		&moderator.IsActive,
		&moderator.IsRoot,
		&moderator.FailedAttempts,
		&moderator.LockedUntil,
		&moderator.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrModeratorNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get moderator")
	}

	return &moderator, nil
}

func (p *PostgreSQLModeratorRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Moderator, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + moderatorColumns + ` FROM moderators ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list moderators")
	}
	defer func() {
		_ = rows.Close()
	}()

	moderators := make([]*authDomain.Moderator, 0)
	for rows.Next() {
		var moderator authDomain.Moderator
		if err := rows.Scan(
			&moderator.ID,
			&moderator.Name,
			&moderator.Secret,
			&moderator.IsActive,
			&moderator.IsRoot,
			&moderator.FailedAttempts,
			&moderator.LockedUntil,
			&moderator.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan moderator")
		}
		moderators = append(moderators, &moderator)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate moderators")
	}

	return moderators, nil
}

func (p *PostgreSQLModeratorRepository) UpdateLockState(
	ctx context.Context,
	moderatorID uuid.UUID,
	failedAttempts int,
	lockedUntil *time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE moderators SET failed_attempts = $1, locked_until = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, failedAttempts, lockedUntil, moderatorID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update moderator lock state")
	}
	return requireRow(result, "failed to update moderator lock state")
}

func requireRow(result sql.Result, message string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if rows == 0 {
		return authDomain.ErrModeratorNotFound
	}
	return nil
}

// NewPostgreSQLModeratorRepository creates a new PostgreSQL Moderator repository.
func NewPostgreSQLModeratorRepository(db *sql.DB) *PostgreSQLModeratorRepository {
	return &PostgreSQLModeratorRepository{db: db}
}

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

// MySQLModeratorRepository implements Moderator persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLModeratorRepository struct {
	db *sql.DB
}

func (m *MySQLModeratorRepository) Create(ctx context.Context, moderator *authDomain.Moderator) error {
	querier := database.GetTx(ctx, m.db)

	id, err := moderator.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal moderator id")
	}

	query := `INSERT INTO moderators (` + moderatorColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

func (m *MySQLModeratorRepository) Update(ctx context.Context, moderator *authDomain.Moderator) error {
	querier := database.GetTx(ctx, m.db)

	id, err := moderator.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal moderator id")
	}

	query := `UPDATE moderators SET name = ?, is_active = ?, is_root = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, moderator.Name, moderator.IsActive, moderator.IsRoot, id); err != nil {
		return apperrors.Wrap(err, "failed to update moderator")
	}
	return nil
}

// Get retrieves a moderator by ID. Returns ErrModeratorNotFound if it doesn't exist.
func (m *MySQLModeratorRepository) Get(ctx context.Context, moderatorID uuid.UUID) (*authDomain.Moderator, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := moderatorID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal moderator id")
	}

	query := `SELECT ` + moderatorColumns + ` FROM moderators WHERE id = ?`

	moderator, err := scanMySQLModerator(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrModeratorNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get moderator")
	}

	return moderator, nil
}

func (m *MySQLModeratorRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Moderator, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + moderatorColumns + ` FROM moderators ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list moderators")
	}
	defer func() {
		_ = rows.Close()
	}()

	moderators := make([]*authDomain.Moderator, 0)
	for rows.Next() {
		moderator, err := scanMySQLModerator(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan moderator")
		}
		moderators = append(moderators, moderator)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate moderators")
	}

	return moderators, nil
}

// UpdateLockState stores the lockout counters. MySQL reports zero affected rows when the
// values are unchanged, so a missing moderator is not detected here.
func (m *MySQLModeratorRepository) UpdateLockState(
	ctx context.Context,
	moderatorID uuid.UUID,
	failedAttempts int,
	lockedUntil *time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := moderatorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal moderator id")
	}

	query := `UPDATE moderators SET failed_attempts = ?, locked_until = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, failedAttempts, lockedUntil, id); err != nil {
		return apperrors.Wrap(err, "failed to update moderator lock state")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLModerator(row rowScanner) (*authDomain.Moderator, error) {
	var moderator authDomain.Moderator
	var id []byte

	if err := row.Scan(
		&id,
		&moderator.Name,
		&moderator.Secret,
		&moderator.IsActive,
		&moderator.IsRoot,
		&moderator.FailedAttempts,
		&moderator.LockedUntil,
		&moderator.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := moderator.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal moderator id")
	}

	return &moderator, nil
}

// NewMySQLModeratorRepository creates a new MySQL Moderator repository.
func NewMySQLModeratorRepository(db *sql.DB) *MySQLModeratorRepository {
	return &MySQLModeratorRepository{db: db}
}

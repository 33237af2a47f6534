package repository

import (
	"context"
	"database/sql"
	"errors"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// MySQLCandidateRepository implements candidate pool persistence for MySQL.
type MySQLCandidateRepository struct {
	db *sql.DB
}

func (m *MySQLCandidateRepository) Get(
	ctx context.Context,
	id string,
	role assignmentDomain.Role,
) (*assignmentDomain.Candidate, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = ? AND role = ?`

	candidate, err := scanCandidate(querier.QueryRowContext(ctx, query, id, string(role)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assignmentDomain.ErrCandidateNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get candidate")
	}
	return candidate, nil
}

func (m *MySQLCandidateRepository) List(
	ctx context.Context,
	role assignmentDomain.Role,
	offset, limit int,
) ([]*assignmentDomain.Candidate, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + candidateColumns + ` FROM candidates
			  WHERE role = ? AND is_active = TRUE
			  ORDER BY name ASC, id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list candidates")
	}
	defer rows.Close() //nolint:errcheck

	return collectCandidates(rows)
}

func (m *MySQLCandidateRepository) Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO candidates (` + candidateColumns + `)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  name = VALUES(name), phone = VALUES(phone), is_active = VALUES(is_active)`

	_, err := querier.ExecContext(
		ctx,
		query,
		candidate.ID,
		string(candidate.Role),
		candidate.Name,
		candidate.Phone,
		candidate.IsActive,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert candidate")
	}
	return nil
}

// NewMySQLCandidateRepository creates a new MySQL candidate repository.
func NewMySQLCandidateRepository(db *sql.DB) *MySQLCandidateRepository {
	return &MySQLCandidateRepository{db: db}
}

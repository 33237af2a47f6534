package repository

import (
	"context"
	"database/sql"
	"errors"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// PostgreSQLCandidateRepository implements candidate pool persistence for PostgreSQL.
type PostgreSQLCandidateRepository struct {
	db *sql.DB
}

func (p *PostgreSQLCandidateRepository) Get(
	ctx context.Context,
	id string,
	role assignmentDomain.Role,
) (*assignmentDomain.Candidate, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1 AND role = $2`

	candidate, err := scanCandidate(querier.QueryRowContext(ctx, query, id, string(role)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assignmentDomain.ErrCandidateNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get candidate")
	}
	return candidate, nil
}

func (p *PostgreSQLCandidateRepository) List(
	ctx context.Context,
	role assignmentDomain.Role,
	offset, limit int,
) ([]*assignmentDomain.Candidate, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + candidateColumns + ` FROM candidates
			  WHERE role = $1 AND is_active = TRUE
			  ORDER BY name ASC, id ASC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list candidates")
	}
	defer rows.Close() //nolint:errcheck

	return collectCandidates(rows)
}

func (p *PostgreSQLCandidateRepository) Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO candidates (` + candidateColumns + `)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (id, role) DO UPDATE SET
			  name = EXCLUDED.name, phone = EXCLUDED.phone, is_active = EXCLUDED.is_active`

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

// NewPostgreSQLCandidateRepository creates a new PostgreSQL candidate repository.
func NewPostgreSQLCandidateRepository(db *sql.DB) *PostgreSQLCandidateRepository {
	return &PostgreSQLCandidateRepository{db: db}
}

func collectCandidates(rows *sql.Rows) ([]*assignmentDomain.Candidate, error) {
	candidates := make([]*assignmentDomain.Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan candidate")
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate candidates")
	}
	return candidates, nil
}

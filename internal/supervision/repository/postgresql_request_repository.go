package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

// PostgreSQLRequestRepository implements supervision request persistence for PostgreSQL.
type PostgreSQLRequestRepository struct {
	db *sql.DB
}

func (p *PostgreSQLRequestRepository) Create(ctx context.Context, request *supervisionDomain.Request) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO supervision_requests (` + requestColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := querier.ExecContext(
		ctx,
		query,
		request.ID,
		request.Applicant.UserID,
		request.Applicant.Name,
		request.Applicant.Email,
		request.Applicant.Phone,
		nullableString(request.TargetFarm.FarmID),
		request.TargetFarm.Name,
		request.TargetFarm.Location,
		string(request.RequestedRole),
		string(request.Status),
		request.SubmittedAt,
		request.DecidedAt,
		nullableString(request.DecidedBy),
		nullableString(request.AssignedFarmID),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create supervision request")
	}
	return nil
}

func (p *PostgreSQLRequestRepository) Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	return p.get(ctx, id, "")
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (p *PostgreSQLRequestRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*supervisionDomain.Request, error) {
	return p.get(ctx, id, " FOR UPDATE")
}

func (p *PostgreSQLRequestRepository) get(
	ctx context.Context,
	id uuid.UUID,
	lock string,
) (*supervisionDomain.Request, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + requestColumns + ` FROM supervision_requests WHERE id = $1` + lock

	var requestID uuid.UUID
	request, err := scanRequest(querier.QueryRowContext(ctx, query, id), &requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, supervisionDomain.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get supervision request")
	}
	request.ID = requestID
	return request, nil
}

// Decide writes the decision only while the stored row is still pending.
func (p *PostgreSQLRequestRepository) Decide(ctx context.Context, request *supervisionDomain.Request) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE supervision_requests
			  SET status = $2, decided_at = $3, decided_by = $4, assigned_farm_id = $5
			  WHERE id = $1 AND status = 'pending'`

	result, err := querier.ExecContext(
		ctx,
		query,
		request.ID,
		string(request.Status),
		request.DecidedAt,
		nullableString(request.DecidedBy),
		nullableString(request.AssignedFarmID),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to decide supervision request")
	}
	return requireDecided(result, request)
}

func (p *PostgreSQLRequestRepository) List(
	ctx context.Context,
	status *supervisionDomain.Status,
	offset, limit int,
) ([]*supervisionDomain.Request, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + requestColumns + ` FROM supervision_requests`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY submitted_at ASC, id ASC`
	if status != nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list supervision requests")
	}
	defer rows.Close() //nolint:errcheck

	requests := make([]*supervisionDomain.Request, 0)
	for rows.Next() {
		var requestID uuid.UUID
		request, err := scanRequest(rows, &requestID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan supervision request")
		}
		request.ID = requestID
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate supervision requests")
	}
	return requests, nil
}

// NewPostgreSQLRequestRepository creates a new PostgreSQL supervision request repository.
func NewPostgreSQLRequestRepository(db *sql.DB) *PostgreSQLRequestRepository {
	return &PostgreSQLRequestRepository{db: db}
}

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

// MySQLRequestRepository implements supervision request persistence for MySQL.
// Request IDs are stored as BINARY(16).
type MySQLRequestRepository struct {
	db *sql.DB
}

func (m *MySQLRequestRepository) Create(ctx context.Context, request *supervisionDomain.Request) error {
	querier := database.GetTx(ctx, m.db)

	id, err := request.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal supervision request id")
	}

	query := `INSERT INTO supervision_requests (` + requestColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

func (m *MySQLRequestRepository) Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	return m.get(ctx, id, "")
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (m *MySQLRequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	return m.get(ctx, id, " FOR UPDATE")
}

func (m *MySQLRequestRepository) get(ctx context.Context, id uuid.UUID, lock string) (*supervisionDomain.Request, error) {
	querier := database.GetTx(ctx, m.db)

	idBinary, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal supervision request id")
	}

	query := `SELECT ` + requestColumns + ` FROM supervision_requests WHERE id = ?` + lock

	var rawID []byte
	request, err := scanRequest(querier.QueryRowContext(ctx, query, idBinary), &rawID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, supervisionDomain.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get supervision request")
	}
	if err := request.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal supervision request id")
	}
	return request, nil
}

// Decide writes the decision only while the stored row is still pending.
func (m *MySQLRequestRepository) Decide(ctx context.Context, request *supervisionDomain.Request) error {
	querier := database.GetTx(ctx, m.db)

	id, err := request.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal supervision request id")
	}

	query := `UPDATE supervision_requests
			  SET status = ?, decided_at = ?, decided_by = ?, assigned_farm_id = ?
			  WHERE id = ? AND status = 'pending'`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(request.Status),
		request.DecidedAt,
		nullableString(request.DecidedBy),
		nullableString(request.AssignedFarmID),
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to decide supervision request")
	}
	return requireDecided(result, request)
}

func (m *MySQLRequestRepository) List(
	ctx context.Context,
	status *supervisionDomain.Status,
	offset, limit int,
) ([]*supervisionDomain.Request, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + requestColumns + ` FROM supervision_requests`
	args := []any{}
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY submitted_at ASC, id ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list supervision requests")
	}
	defer rows.Close() //nolint:errcheck

	requests := make([]*supervisionDomain.Request, 0)
	for rows.Next() {
		var rawID []byte
		request, err := scanRequest(rows, &rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan supervision request")
		}
		if err := request.ID.UnmarshalBinary(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal supervision request id")
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate supervision requests")
	}
	return requests, nil
}

// NewMySQLRequestRepository creates a new MySQL supervision request repository.
func NewMySQLRequestRepository(db *sql.DB) *MySQLRequestRepository {
	return &MySQLRequestRepository{db: db}
}

// Package repository provides supervision request persistence for PostgreSQL and MySQL.
package repository

import (
	"database/sql"

	apperrors "github.com/allisson/vetdesk/internal/errors"
	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

const requestColumns = `id, applicant_user_id, applicant_name, applicant_email, applicant_phone,
	target_farm_id, target_farm_name, target_farm_location, requested_role, status,
	submitted_at, decided_at, decided_by, assigned_farm_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRequest reads a supervision_requests row. The id column is scanned into id so each
// dialect can decode its own UUID representation.
func scanRequest(row rowScanner, id any) (*supervisionDomain.Request, error) {
	var (
		request        supervisionDomain.Request
		targetFarmID   sql.NullString
		requestedRole  string
		status         string
		decidedAt      sql.NullTime
		decidedBy      sql.NullString
		assignedFarmID sql.NullString
	)

	if err := row.Scan(
		id,
		&request.Applicant.UserID,
		&request.Applicant.Name,
		&request.Applicant.Email,
		&request.Applicant.Phone,
		&targetFarmID,
		&request.TargetFarm.Name,
		&request.TargetFarm.Location,
		&requestedRole,
		&status,
		&request.SubmittedAt,
		&decidedAt,
		&decidedBy,
		&assignedFarmID,
	); err != nil {
		return nil, err
	}

	request.TargetFarm.FarmID = targetFarmID.String
	request.RequestedRole = supervisionDomain.RequestedRole(requestedRole)
	request.Status = supervisionDomain.Status(status)
	if decidedAt.Valid {
		request.DecidedAt = &decidedAt.Time
	}
	request.DecidedBy = decidedBy.String
	request.AssignedFarmID = assignedFarmID.String

	return &request, nil
}

// requireDecided turns a guarded decision update that matched nothing into ErrNotPending.
func requireDecided(result sql.Result, request *supervisionDomain.Request) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return apperrors.Wrapf(supervisionDomain.ErrNotPending, "request %s", request.ID)
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

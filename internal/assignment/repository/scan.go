// Package repository provides assignment, candidate and farm persistence for PostgreSQL
// and MySQL.
package repository

import (
	"database/sql"
	"errors"
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
)

const assignmentColumns = `farm_id, vet_id, vet_name, vet_phone, vet_assigned_at,
	supervisor_id, supervisor_name, supervisor_phone, supervisor_assigned_at, updated_at`

const candidateColumns = `id, role, name, phone, is_active`

const farmColumns = `id, owner_id, name, location, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// slotColumn returns the column prefix of a role. Only known roles reach the queries.
func slotColumn(role assignmentDomain.Role) (string, error) {
	if !role.Valid() {
		return "", assignmentDomain.ErrInvalidRole
	}
	return string(role), nil
}

type nullableSlot struct {
	id         sql.NullString
	name       sql.NullString
	phone      sql.NullString
	assignedAt sql.NullTime
}

func (s nullableSlot) assignee() *assignmentDomain.Assignee {
	if !s.id.Valid {
		return nil
	}
	return &assignmentDomain.Assignee{
		ID:         s.id.String,
		Name:       s.name.String,
		Phone:      s.phone.String,
		AssignedAt: s.assignedAt.Time,
	}
}

// slotArgs flattens a slot into query arguments, NULLs when empty.
func slotArgs(assignee *assignmentDomain.Assignee) []any {
	if assignee == nil {
		return []any{nil, nil, nil, nil}
	}
	return []any{assignee.ID, assignee.Name, assignee.Phone, assignee.AssignedAt}
}

// scanAssignment reads one assignments row. A missing row yields empty slots.
func scanAssignment(row rowScanner, farmID string) (*assignmentDomain.Assignment, error) {
	var (
		id         string
		vet        nullableSlot
		supervisor nullableSlot
		updatedAt  time.Time
	)

	err := row.Scan(
		&id,
		&vet.id, &vet.name, &vet.phone, &vet.assignedAt,
		&supervisor.id, &supervisor.name, &supervisor.phone, &supervisor.assignedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assignmentDomain.NewAssignment(farmID), nil
		}
		return nil, err
	}

	return &assignmentDomain.Assignment{
		FarmID:     id,
		Vet:        vet.assignee(),
		Supervisor: supervisor.assignee(),
		UpdatedAt:  &updatedAt,
	}, nil
}

func scanCandidate(row rowScanner) (*assignmentDomain.Candidate, error) {
	var (
		candidate assignmentDomain.Candidate
		role      string
	)
	if err := row.Scan(&candidate.ID, &role, &candidate.Name, &candidate.Phone, &candidate.IsActive); err != nil {
		return nil, err
	}
	candidate.Role = assignmentDomain.Role(role)
	return &candidate, nil
}

func scanFarm(row rowScanner) (*assignmentDomain.Farm, error) {
	var (
		farm    assignmentDomain.Farm
		ownerID sql.NullString
	)
	if err := row.Scan(&farm.ID, &ownerID, &farm.Name, &farm.Location, &farm.CreatedAt); err != nil {
		return nil, err
	}
	farm.OwnerID = ownerID.String
	return &farm, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

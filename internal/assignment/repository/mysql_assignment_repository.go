package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// MySQLAssignmentRepository stores one assignments row per farm.
type MySQLAssignmentRepository struct {
	db *sql.DB
}

// Get reads the farm row. No row yields an empty assignment.
func (m *MySQLAssignmentRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE farm_id = ?`

	assignment, err := scanAssignment(querier.QueryRowContext(ctx, query, farmID), farmID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get assignment")
	}
	return assignment, nil
}

// Save upserts both slots of the farm row.
func (m *MySQLAssignmentRepository) Save(
	ctx context.Context,
	assignment *assignmentDomain.Assignment,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO assignments (` + assignmentColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  vet_id = VALUES(vet_id), vet_name = VALUES(vet_name),
			  vet_phone = VALUES(vet_phone), vet_assigned_at = VALUES(vet_assigned_at),
			  supervisor_id = VALUES(supervisor_id), supervisor_name = VALUES(supervisor_name),
			  supervisor_phone = VALUES(supervisor_phone), supervisor_assigned_at = VALUES(supervisor_assigned_at),
			  updated_at = VALUES(updated_at)`

	args := []any{assignment.FarmID}
	args = append(args, slotArgs(assignment.Vet)...)
	args = append(args, slotArgs(assignment.Supervisor)...)
	args = append(args, updatedAt)

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to save assignment")
	}
	return nil
}

// EnsureRow inserts an empty row unless one exists.
func (m *MySQLAssignmentRepository) EnsureRow(ctx context.Context, farmID string, updatedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT IGNORE INTO assignments (farm_id, updated_at) VALUES (?, ?)`

	if _, err := querier.ExecContext(ctx, query, farmID, updatedAt); err != nil {
		return apperrors.Wrap(err, "failed to ensure assignment row")
	}
	return nil
}

// FillSlot writes the slot only while it is still NULL.
func (m *MySQLAssignmentRepository) FillSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	assignee *assignmentDomain.Assignee,
) error {
	column, err := slotColumn(role)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`UPDATE assignments
			  SET %[1]s_id = ?, %[1]s_name = ?, %[1]s_phone = ?, %[1]s_assigned_at = ?, updated_at = ?
			  WHERE farm_id = ? AND %[1]s_id IS NULL`, column)

	result, err := querier.ExecContext(
		ctx,
		query,
		assignee.ID,
		assignee.Name,
		assignee.Phone,
		assignee.AssignedAt,
		assignee.AssignedAt,
		farmID,
	)
	if err != nil {
		return apperrors.Wrapf(err, "failed to fill %s slot", role)
	}
	return requireSlotWritten(result, farmID, role)
}

// ClearSlot nulls the slot and reports whether it held an assignee.
func (m *MySQLAssignmentRepository) ClearSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	updatedAt time.Time,
) (bool, error) {
	column, err := slotColumn(role)
	if err != nil {
		return false, err
	}
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`UPDATE assignments
			  SET %[1]s_id = NULL, %[1]s_name = NULL, %[1]s_phone = NULL, %[1]s_assigned_at = NULL, updated_at = ?
			  WHERE farm_id = ? AND %[1]s_id IS NOT NULL`, column)

	result, err := querier.ExecContext(ctx, query, updatedAt, farmID)
	if err != nil {
		return false, apperrors.Wrapf(err, "failed to clear %s slot", role)
	}
	return slotChanged(result)
}

// NewMySQLAssignmentRepository creates a new MySQL assignment repository.
func NewMySQLAssignmentRepository(db *sql.DB) *MySQLAssignmentRepository {
	return &MySQLAssignmentRepository{db: db}
}

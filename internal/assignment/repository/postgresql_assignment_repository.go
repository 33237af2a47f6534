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

// PostgreSQLAssignmentRepository stores one assignments row per farm.
type PostgreSQLAssignmentRepository struct {
	db *sql.DB
}

// Get reads the farm row. No row yields an empty assignment.
func (p *PostgreSQLAssignmentRepository) Get(
	ctx context.Context,
	farmID string,
) (*assignmentDomain.Assignment, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE farm_id = $1`

	assignment, err := scanAssignment(querier.QueryRowContext(ctx, query, farmID), farmID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get assignment")
	}
	return assignment, nil
}

// Save upserts both slots of the farm row.
func (p *PostgreSQLAssignmentRepository) Save(
	ctx context.Context,
	assignment *assignmentDomain.Assignment,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO assignments (` + assignmentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  ON CONFLICT (farm_id) DO UPDATE SET
			  vet_id = EXCLUDED.vet_id, vet_name = EXCLUDED.vet_name,
			  vet_phone = EXCLUDED.vet_phone, vet_assigned_at = EXCLUDED.vet_assigned_at,
			  supervisor_id = EXCLUDED.supervisor_id, supervisor_name = EXCLUDED.supervisor_name,
			  supervisor_phone = EXCLUDED.supervisor_phone, supervisor_assigned_at = EXCLUDED.supervisor_assigned_at,
			  updated_at = EXCLUDED.updated_at`

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
func (p *PostgreSQLAssignmentRepository) EnsureRow(ctx context.Context, farmID string, updatedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO assignments (farm_id, updated_at) VALUES ($1, $2)
			  ON CONFLICT (farm_id) DO NOTHING`

	if _, err := querier.ExecContext(ctx, query, farmID, updatedAt); err != nil {
		return apperrors.Wrap(err, "failed to ensure assignment row")
	}
	return nil
}

// FillSlot writes the slot only while it is still NULL.
func (p *PostgreSQLAssignmentRepository) FillSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	assignee *assignmentDomain.Assignee,
) error {
	column, err := slotColumn(role)
	if err != nil {
		return err
	}
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`UPDATE assignments
			  SET %[1]s_id = $2, %[1]s_name = $3, %[1]s_phone = $4, %[1]s_assigned_at = $5, updated_at = $5
			  WHERE farm_id = $1 AND %[1]s_id IS NULL`, column)

	result, err := querier.ExecContext(ctx, query, farmID, assignee.ID, assignee.Name, assignee.Phone, assignee.AssignedAt)
	if err != nil {
		return apperrors.Wrapf(err, "failed to fill %s slot", role)
	}
	return requireSlotWritten(result, farmID, role)
}

// ClearSlot nulls the slot and reports whether it held an assignee.
func (p *PostgreSQLAssignmentRepository) ClearSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	updatedAt time.Time,
) (bool, error) {
	column, err := slotColumn(role)
	if err != nil {
		return false, err
	}
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`UPDATE assignments
			  SET %[1]s_id = NULL, %[1]s_name = NULL, %[1]s_phone = NULL, %[1]s_assigned_at = NULL, updated_at = $2
			  WHERE farm_id = $1 AND %[1]s_id IS NOT NULL`, column)

	result, err := querier.ExecContext(ctx, query, farmID, updatedAt)
	if err != nil {
		return false, apperrors.Wrapf(err, "failed to clear %s slot", role)
	}
	return slotChanged(result)
}

// NewPostgreSQLAssignmentRepository creates a new PostgreSQL assignment repository.
func NewPostgreSQLAssignmentRepository(db *sql.DB) *PostgreSQLAssignmentRepository {
	return &PostgreSQLAssignmentRepository{db: db}
}

// requireSlotWritten turns a compare-and-swap that matched nothing into ErrAlreadyAssigned.
func requireSlotWritten(result sql.Result, farmID string, role assignmentDomain.Role) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return apperrors.Wrapf(assignmentDomain.ErrAlreadyAssigned, "farm %s %s slot", farmID, role)
	}
	return nil
}

func slotChanged(result sql.Result) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return affected > 0, nil
}

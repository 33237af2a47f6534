package domain

import apperrors "github.com/allisson/vetdesk/internal/errors"

// Supervision request errors.
var (
	ErrNotPending = apperrors.Define(apperrors.ErrConflict, "not_pending", "request is not pending")

	// ErrAssignmentConflict is returned when approval hits an occupied slot. The request stays pending.
	ErrAssignmentConflict = apperrors.Define(
		apperrors.ErrConflict,
		"assignment_conflict",
		"requested slot is already assigned",
	)

	ErrRequestNotFound      = apperrors.Define(apperrors.ErrNotFound, "request_not_found", "request not found")
	ErrInvalidRequestedRole = apperrors.Define(
		apperrors.ErrInvalidInput,
		"invalid_requested_role",
		"requested role must be supervision, vet_assignment or both",
	)
	ErrInvalidStatus = apperrors.Define(
		apperrors.ErrInvalidInput,
		"invalid_status",
		"status must be pending, approved or rejected",
	)
)

package domain

import (
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// Assignment errors.
var (
	// ErrAlreadyAssigned indicates the slot is occupied. Remove the occupant first.
	ErrAlreadyAssigned = apperrors.Define(apperrors.ErrConflict, "already_assigned", "slot already assigned")

	// ErrInvalidCandidate indicates the candidate pool does not list the ID as an active
	// candidate of the requested role.
	ErrInvalidCandidate = apperrors.Define(apperrors.ErrInvalidInput, "invalid_candidate", "invalid candidate")

	ErrInvalidRole = apperrors.Define(apperrors.ErrInvalidInput, "invalid_role", "role must be vet or supervisor")
	ErrInvalidFarm = apperrors.Define(apperrors.ErrInvalidInput, "invalid_farm", "farm id must not be blank")

	ErrFarmNotFound      = apperrors.Define(apperrors.ErrNotFound, "farm_not_found", "farm not found")
	ErrCandidateNotFound = apperrors.Define(apperrors.ErrNotFound, "candidate_not_found", "candidate not found")
)

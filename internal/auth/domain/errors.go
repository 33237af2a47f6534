package domain

import (
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// Authentication and audit errors.
var (
	ErrModeratorNotFound = apperrors.Define(apperrors.ErrNotFound, "moderator_not_found", "moderator not found")

	ErrTokenNotFound = apperrors.Define(apperrors.ErrNotFound, "token_not_found", "token not found")

	// ErrInvalidCredentials covers unknown moderators, wrong secrets and unusable tokens alike.
	ErrInvalidCredentials = apperrors.Define(
		apperrors.ErrUnauthorized, "invalid_credentials", "invalid credentials",
	)

	ErrModeratorInactive = apperrors.Define(apperrors.ErrForbidden, "moderator_inactive", "moderator is inactive")

	ErrModeratorLocked = apperrors.Define(apperrors.ErrLocked, "moderator_locked", "moderator is locked")

	ErrRootRequired = apperrors.Define(apperrors.ErrForbidden, "root_required", "root moderator required")

	ErrCapabilityDenied = apperrors.Define(apperrors.ErrForbidden, "capability_denied", "capability denied")

	ErrSignatureInvalid = apperrors.Define(
		apperrors.ErrConflict, "signature_invalid", "audit log signature is invalid",
	)
)

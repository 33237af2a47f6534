package domain

import (
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// Permission errors.
var (
	// ErrUnknownCapability indicates an identifier or parent/child pair absent from the catalog.
	ErrUnknownCapability = apperrors.Define(
		apperrors.ErrInvalidInput, "unknown_capability", "unknown capability",
	)

	// ErrInvalidGrantSet indicates a bulk grant containing keys absent from the catalog.
	ErrInvalidGrantSet = apperrors.Define(
		apperrors.ErrInvalidInput, "invalid_grant_set", "invalid grant set",
	)

	// ErrInvalidModerator indicates a blank or malformed moderator identity.
	ErrInvalidModerator = apperrors.Define(
		apperrors.ErrInvalidInput, "invalid_moderator", "invalid moderator",
	)
)

// Package dto provides data transfer objects for moderator, token and audit log endpoints.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// CreateModeratorRequest contains the parameters for creating a moderator.
type CreateModeratorRequest struct {
	Name   string `json:"name"`
	IsRoot bool   `json:"is_root"`
}

// Validate checks if the create moderator request is valid.
func (r *CreateModeratorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// IssueTokenRequest contains the credentials for issuing a bearer token.
type IssueTokenRequest struct {
	ModeratorID string `json:"moderator_id"`
	Secret      string `json:"secret"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ModeratorID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.Secret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ToInput converts a validated request into the use case input.
func (r *IssueTokenRequest) ToInput() *authDomain.IssueTokenInput {
	return &authDomain.IssueTokenInput{
		ModeratorID: uuid.MustParse(r.ModeratorID),
		Secret:      r.Secret,
	}
}

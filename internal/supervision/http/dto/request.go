// Package dto provides data transfer objects for the supervision request HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// ApplicantRequest carries the applicant contact fields.
type ApplicantRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// Validate checks the contact fields.
func (a ApplicantRequest) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.UserID, validation.Required, customValidation.NotBlank),
		validation.Field(&a.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&a.Email, validation.Required, customValidation.NotBlank, customValidation.Contact),
		validation.Field(&a.Phone, validation.Required, customValidation.NotBlank, customValidation.Contact),
	)
}

// TargetFarmRequest references an existing farm or describes a new one.
type TargetFarmRequest struct {
	FarmID   string `json:"farm_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// SubmitRequest is the public submission payload.
type SubmitRequest struct {
	Applicant     ApplicantRequest  `json:"applicant"`
	TargetFarm    TargetFarmRequest `json:"target_farm"`
	RequestedRole string            `json:"requested_role"`
}

// Validate checks the shape of the payload. Field semantics are validated by the workflow.
func (r *SubmitRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RequestedRole,
			validation.Required,
			validation.In("supervision", "vet_assignment", "both"),
		),
		validation.Field(&r.Applicant),
	)
}

// ToDomain converts the payload to a SubmitInput.
func (r *SubmitRequest) ToDomain() *supervisionDomain.SubmitInput {
	return &supervisionDomain.SubmitInput{
		Applicant: supervisionDomain.Applicant{
			UserID: r.Applicant.UserID,
			Name:   r.Applicant.Name,
			Email:  r.Applicant.Email,
			Phone:  r.Applicant.Phone,
		},
		TargetFarm: supervisionDomain.TargetFarm{
			FarmID:   r.TargetFarm.FarmID,
			Name:     r.TargetFarm.Name,
			Location: r.TargetFarm.Location,
		},
		RequestedRole: supervisionDomain.RequestedRole(r.RequestedRole),
	}
}

// Package dto provides data transfer objects for the assignment HTTP API.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// AssignSlotRequest places a pool candidate into a farm slot. Name and phone default to the
// candidate pool entry when omitted.
type AssignSlotRequest struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
}

// Validate checks the request fields.
func (r *AssignSlotRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CandidateID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Name, validation.Length(0, 255)),
		validation.Field(&r.Phone, customValidation.Contact),
	)
}

// Normalize trims surrounding whitespace from every field.
func (r *AssignSlotRequest) Normalize() {
	r.CandidateID = strings.TrimSpace(r.CandidateID)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

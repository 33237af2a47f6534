// Package dto provides data transfer objects for catalog, grant and permission endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// ReplaceGrantRequest is the full grant of a moderator. Omitted keys are stored as absent.
type ReplaceGrantRequest struct {
	Capabilities map[string]bool `json:"capabilities"`
	SubOptions   map[string]bool `json:"sub_options"`
}

// Validate checks the shape of every key. Catalog membership is checked by the use case.
func (r *ReplaceGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Capabilities, validation.By(identifierKeys)),
		validation.Field(&r.SubOptions, validation.By(identifierKeys)),
	)
}

// ToDomain converts the request into a domain grant for moderatorID.
func (r *ReplaceGrantRequest) ToDomain(moderatorID string) *permissionDomain.Grant {
	grant := permissionDomain.NewGrant(moderatorID)
	for id, enabled := range r.Capabilities {
		grant.Capabilities[id] = enabled
	}
	for id, enabled := range r.SubOptions {
		grant.SubOptions[id] = enabled
	}
	return grant
}

// SetEnabledRequest toggles a single capability or sub-option.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate checks if the request is valid.
func (r *SetEnabledRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Enabled, validation.NotNil),
	)
}

func identifierKeys(value any) error {
	keys, _ := value.(map[string]bool)
	for key := range keys {
		if err := validation.Validate(key, customValidation.Identifier); err != nil {
			return validation.NewError("validation_key_format", "keys must be lower snake case identifiers")
		}
	}
	return nil
}

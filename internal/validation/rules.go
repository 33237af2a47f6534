// Package validation holds the string rules shared by request DTOs and use cases.
package validation

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/vetdesk/internal/errors"
)

var identifierRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func stringRule(code, message string, valid func(string) bool) validation.StringRule {
	return validation.NewStringRuleWithError(valid, validation.NewError(code, message))
}

// WrapValidationError turns a validation failure into ErrInvalidInput so it maps to 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank rejects strings made only of whitespace.
var NotBlank = stringRule("validation_not_blank", "must not be blank", func(s string) bool {
	return strings.TrimSpace(s) != ""
})

// Contact bounds free-form contact text such as a phone number or an email address. Contact
// details are stored as given and never parsed.
var Contact = validation.Length(1, 255)

// Identifier accepts lower snake case catalog keys such as approvals_super.
var Identifier = stringRule(
	"validation_identifier_format",
	"must be a lower snake case identifier",
	identifierRegex.MatchString,
)

// UUID accepts the canonical hyphenated form.
var UUID = stringRule("validation_uuid_format", "must be a valid UUID", func(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
})

package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

// candidateUseCase implements CandidateUseCase.
type candidateUseCase struct {
	candidateRepo CandidateRepository
}

// List returns active candidates of a role.
func (c *candidateUseCase) List(
	ctx context.Context,
	role assignmentDomain.Role,
	offset, limit int,
) ([]*assignmentDomain.Candidate, error) {
	if !role.Valid() {
		return nil, assignmentDomain.ErrInvalidRole
	}
	return c.candidateRepo.List(ctx, role, offset, limit)
}

// Upsert validates and stores a candidate.
func (c *candidateUseCase) Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error {
	if !candidate.Role.Valid() {
		return assignmentDomain.ErrInvalidRole
	}

	candidate.ID = strings.TrimSpace(candidate.ID)
	candidate.Name = strings.TrimSpace(candidate.Name)
	candidate.Phone = strings.TrimSpace(candidate.Phone)

	err := validation.ValidateStruct(candidate,
		validation.Field(&candidate.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&candidate.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&candidate.Phone, validation.Required, customValidation.Contact),
	)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}

	return c.candidateRepo.Upsert(ctx, candidate)
}

// NewCandidateUseCase creates a new CandidateUseCase.
func NewCandidateUseCase(candidateRepo CandidateRepository) CandidateUseCase {
	return &candidateUseCase{candidateRepo: candidateRepo}
}

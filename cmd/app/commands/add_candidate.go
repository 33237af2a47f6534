package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
)

// RunAddCandidate creates or updates a vet or supervisor in the candidate pool.
func RunAddCandidate(
	ctx context.Context,
	candidateUseCase assignmentUseCase.CandidateUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id, role, name, phone string,
	active bool,
	format string,
) error {
	parsedRole, err := assignmentDomain.ParseRole(role)
	if err != nil {
		return fmt.Errorf("invalid role %q: %w", role, err)
	}

	candidate := &assignmentDomain.Candidate{
		ID:       id,
		Role:     parsedRole,
		Name:     name,
		Phone:    phone,
		IsActive: active,
	}
	if err := candidateUseCase.Upsert(ctx, candidate); err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}

	logger.Info("candidate saved",
		slog.String("candidate_id", candidate.ID),
		slog.String("role", string(candidate.Role)),
		slog.Bool("active", candidate.IsActive),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"id":        candidate.ID,
			"role":      candidate.Role,
			"name":      candidate.Name,
			"phone":     candidate.Phone,
			"is_active": candidate.IsActive,
		})
	}

	_, _ = fmt.Fprintf(writer, "Saved %s %s (%s)\n", candidate.Role, candidate.ID, candidate.Name)
	return nil
}

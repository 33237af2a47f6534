package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// farmUseCase implements FarmUseCase.
type farmUseCase struct {
	farmRepo FarmRepository
}

// Get returns a farm by ID.
func (f *farmUseCase) Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error) {
	if err := assignmentDomain.ValidateFarmID(farmID); err != nil {
		return nil, err
	}
	return f.farmRepo.Get(ctx, farmID)
}

// List returns a page of farms.
func (f *farmUseCase) List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error) {
	return f.farmRepo.List(ctx, offset, limit)
}

// Ensure looks the farm up by ID and creates it when missing. A new farm registered only
// by ID takes the ID as its name. Must run inside the caller's transaction to be atomic with
// whatever depends on the farm.
func (f *farmUseCase) Ensure(ctx context.Context, farm *assignmentDomain.Farm) (*assignmentDomain.Farm, error) {
	id := strings.TrimSpace(farm.ID)
	if id != "" {
		existing, err := f.farmRepo.Get(ctx, id)
		if err == nil {
			return existing, nil
		}
		if !apperrors.Is(err, assignmentDomain.ErrFarmNotFound) {
			return nil, err
		}
	}

	name := strings.TrimSpace(farm.Name)
	switch {
	case name == "" && id == "":
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "a new farm needs an id or a name")
	case name == "":
		name = id
	case id == "":
		id = uuid.Must(uuid.NewV7()).String()
	}

	created := &assignmentDomain.Farm{
		ID:        id,
		OwnerID:   strings.TrimSpace(farm.OwnerID),
		Name:      name,
		Location:  strings.TrimSpace(farm.Location),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := f.farmRepo.Create(ctx, created); err != nil {
		return nil, err
	}

	// A concurrent Ensure may have inserted the same ID first; its row wins.
	stored, err := f.farmRepo.Get(ctx, id)
	switch {
	case err == nil:
		return stored, nil
	case apperrors.Is(err, assignmentDomain.ErrFarmNotFound):
		// Snapshot reads (MySQL REPEATABLE READ) can hide a row committed after the tx began.
		return created, nil
	default:
		return nil, err
	}
}

// NewFarmUseCase creates a new FarmUseCase.
func NewFarmUseCase(farmRepo FarmRepository) FarmUseCase {
	return &farmUseCase{farmRepo: farmRepo}
}

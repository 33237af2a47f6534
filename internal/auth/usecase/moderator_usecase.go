// Package usecase implements business logic orchestration for moderator authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

type moderatorUseCase struct {
	txManager     database.TxManager
	moderatorRepo ModeratorRepository
	secretService authService.SecretService
}

// Create generates a moderator with a fresh Argon2id hashed secret.
func (m *moderatorUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateModeratorInput,
) (*authDomain.CreateModeratorOutput, error) {
	// Generate secret
	plainSecret, hashedSecret, err := m.secretService.GenerateSecret()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate moderator secret")
	}

	moderator := &authDomain.Moderator{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      input.Name,
		Secret:    hashedSecret,
		IsActive:  true,
		IsRoot:    input.IsRoot,
		CreatedAt: time.Now().UTC(),
	}

	// Persist moderator
	if err := m.moderatorRepo.Create(ctx, moderator); err != nil {
		return nil, err
	}

	// The plain secret leaves this function exactly once
	return &authDomain.CreateModeratorOutput{
		ID:          moderator.ID,
		PlainSecret: plainSecret,
	}, nil
}

func (m *moderatorUseCase) Get(ctx context.Context, moderatorID uuid.UUID) (*authDomain.Moderator, error) {
	return m.moderatorRepo.Get(ctx, moderatorID)
}

func (m *moderatorUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.Moderator, error) {
	return m.moderatorRepo.List(ctx, offset, limit)
}

// Deactivate marks the moderator inactive.
func (m *moderatorUseCase) Deactivate(ctx context.Context, moderatorID uuid.UUID) error {
	return m.txManager.WithTx(ctx, func(ctx context.Context) error {
		moderator, err := m.moderatorRepo.Get(ctx, moderatorID)
		if err != nil {
			return err
		}
		// Already inactive
		if !moderator.IsActive {
			return nil
		}
		moderator.IsActive = false
		return m.moderatorRepo.Update(ctx, moderator)
	})
}

// Unlock resets the lockout state.
func (m *moderatorUseCase) Unlock(ctx context.Context, moderatorID uuid.UUID) error {
	return m.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := m.moderatorRepo.Get(ctx, moderatorID); err != nil {
			return err
		}
		return m.moderatorRepo.UpdateLockState(ctx, moderatorID, 0, nil)
	})
}

// NewModeratorUseCase creates a new ModeratorUseCase with the provided dependencies.
func NewModeratorUseCase(
	txManager database.TxManager,
	moderatorRepo ModeratorRepository,
	secretService authService.SecretService,
) ModeratorUseCase {
	return &moderatorUseCase{
		txManager:     txManager,
		moderatorRepo: moderatorRepo,
		secretService: secretService,
	}
}

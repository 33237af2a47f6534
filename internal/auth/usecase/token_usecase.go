package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	"github.com/allisson/vetdesk/internal/config"
)

// tokenUseCase implements TokenUseCase interface for managing bearer tokens.
type tokenUseCase struct {
	config        *config.Config
	moderatorRepo ModeratorRepository
	tokenRepo     TokenRepository
	secretService authService.SecretService
	tokenService  authService.TokenService
	now           func() time.Time
}

// Issue authenticates a moderator and generates a new bearer token.
//
// Unknown moderators and wrong secrets both yield ErrInvalidCredentials so callers cannot
// enumerate accounts. Every wrong secret increments the failed attempt counter; reaching
// LockoutMaxAttempts locks the account for LockoutDuration and returns ErrModeratorLocked.
// A successful issuance resets the counter.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	// Get moderator by ID
	moderator, err := t.moderatorRepo.Get(ctx, input.ModeratorID)
	if err != nil {
		if errors.Is(err, authDomain.ErrModeratorNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := t.now()

	// A locked account is rejected before the secret is checked
	if moderator.IsLocked(now) {
		return nil, authDomain.ErrModeratorLocked
	}

	if !moderator.IsActive {
		return nil, authDomain.ErrModeratorInactive
	}

	// Verify secret
	if !t.secretService.CompareSecret(input.Secret, moderator.Secret) {
		return nil, t.registerFailure(ctx, moderator, now)
	}

	// Reset lockout state on success
	if moderator.FailedAttempts > 0 || moderator.LockedUntil != nil {
		if err := t.moderatorRepo.UpdateLockState(ctx, moderator.ID, 0, nil); err != nil {
			return nil, err
		}
	}

	// Generate token
	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	// Only the hash is persisted
	token := &authDomain.Token{
		ID:          uuid.Must(uuid.NewV7()),
		TokenHash:   tokenHash,
		ModeratorID: moderator.ID,
		ExpiresAt:   now.Add(t.config.AuthTokenExpiration),
		CreatedAt:   now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// registerFailure bumps the failed attempt counter and locks the account once the limit is hit.
func (t *tokenUseCase) registerFailure(
	ctx context.Context,
	moderator *authDomain.Moderator,
	now time.Time,
) error {
	attempts := moderator.FailedAttempts + 1
	var lockedUntil *time.Time
	if t.config.LockoutMaxAttempts > 0 && attempts >= t.config.LockoutMaxAttempts {
		until := now.Add(t.config.LockoutDuration)
		lockedUntil = &until
		attempts = 0
	}

	if err := t.moderatorRepo.UpdateLockState(ctx, moderator.ID, attempts, lockedUntil); err != nil {
		return err
	}

	if lockedUntil != nil {
		return authDomain.ErrModeratorLocked
	}
	return authDomain.ErrInvalidCredentials
}

// Authenticate validates a token hash and returns the associated moderator.
// Missing, expired and revoked tokens all yield ErrInvalidCredentials.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Moderator, error) {
	// Look up token
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Check expiration and revocation
	if !token.IsUsable(t.now()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// Load the owning moderator
	moderator, err := t.moderatorRepo.Get(ctx, token.ModeratorID)
	if err != nil {
		if errors.Is(err, authDomain.ErrModeratorNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !moderator.IsActive {
		return nil, authDomain.ErrModeratorInactive
	}

	return moderator, nil
}

// PurgeExpired deletes tokens that expired more than olderThan ago.
func (t *tokenUseCase) PurgeExpired(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	return t.tokenRepo.DeleteExpired(ctx, t.now().Add(-olderThan), dryRun)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	moderatorRepo ModeratorRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:        config,
		moderatorRepo: moderatorRepo,
		tokenRepo:     tokenRepo,
		secretService: secretService,
		tokenService:  tokenService,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

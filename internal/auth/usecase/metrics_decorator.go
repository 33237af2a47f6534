package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	"github.com/allisson/vetdesk/internal/metrics"
)

func recordAuth(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	m.RecordOperation(ctx, metrics.DomainAuth, operation, status)
	m.RecordDuration(ctx, metrics.DomainAuth, operation, time.Since(start), status)
}

// moderatorUseCaseWithMetrics decorates ModeratorUseCase with metrics instrumentation.
type moderatorUseCaseWithMetrics struct {
	next    ModeratorUseCase
	metrics metrics.BusinessMetrics
}

// NewModeratorUseCaseWithMetrics wraps a ModeratorUseCase with metrics recording.
func NewModeratorUseCaseWithMetrics(useCase ModeratorUseCase, m metrics.BusinessMetrics) ModeratorUseCase {
	return &moderatorUseCaseWithMetrics{next: useCase, metrics: m}
}

func (u *moderatorUseCaseWithMetrics) Create(
	ctx context.Context,
	input *authDomain.CreateModeratorInput,
) (*authDomain.CreateModeratorOutput, error) {
	start := time.Now()
	output, err := u.next.Create(ctx, input)
	recordAuth(ctx, u.metrics, "moderator_create", start, err)
	return output, err
}

func (u *moderatorUseCaseWithMetrics) Get(
	ctx context.Context,
	moderatorID uuid.UUID,
) (*authDomain.Moderator, error) {
	start := time.Now()
	moderator, err := u.next.Get(ctx, moderatorID)
	recordAuth(ctx, u.metrics, "moderator_get", start, err)
	return moderator, err
}

func (u *moderatorUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Moderator, error) {
	start := time.Now()
	moderators, err := u.next.List(ctx, offset, limit)
	recordAuth(ctx, u.metrics, "moderator_list", start, err)
	return moderators, err
}

func (u *moderatorUseCaseWithMetrics) Deactivate(ctx context.Context, moderatorID uuid.UUID) error {
	start := time.Now()
	err := u.next.Deactivate(ctx, moderatorID)
	recordAuth(ctx, u.metrics, "moderator_deactivate", start, err)
	return err
}

func (u *moderatorUseCaseWithMetrics) Unlock(ctx context.Context, moderatorID uuid.UUID) error {
	start := time.Now()
	err := u.next.Unlock(ctx, moderatorID)
	recordAuth(ctx, u.metrics, "moderator_unlock", start, err)
	return err
}

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{next: useCase, metrics: m}
}

// Issue records metrics for token issuance, including failed credential checks.
func (u *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := u.next.Issue(ctx, input)
	recordAuth(ctx, u.metrics, "token_issue", start, err)
	return output, err
}

// Authenticate records metrics for token validation.
func (u *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Moderator, error) {
	start := time.Now()
	moderator, err := u.next.Authenticate(ctx, tokenHash)
	recordAuth(ctx, u.metrics, "token_authenticate", start, err)
	return moderator, err
}

func (u *tokenUseCaseWithMetrics) PurgeExpired(
	ctx context.Context,
	olderThan time.Duration,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := u.next.PurgeExpired(ctx, olderThan, dryRun)
	recordAuth(ctx, u.metrics, "token_purge_expired", start, err)
	return count, err
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authService "github.com/allisson/vetdesk/internal/auth/service"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

const verifyBatchSize = 500

// ErrSigningKeyNotConfigured is returned by VerifyBatch when no audit signing key is loaded.
var ErrSigningKeyNotConfigured = apperrors.New("audit signing key is not configured")

// auditLogUseCase implements AuditLogUseCase interface for recording audit logs.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	signer       authService.AuditSigner
	signingKey   []byte
	now          func() time.Time
}

// Create records an audit log entry for an allowed capability check. Generates a UUIDv7
// identifier and timestamp. The metadata parameter is optional and can be nil.
func (a *auditLogUseCase) Create(
	ctx context.Context,
	requestID uuid.UUID,
	moderatorID uuid.UUID,
	capability string,
	path string,
	metadata map[string]any,
) error {
	auditLog := &authDomain.AuditLog{
		ID:          uuid.Must(uuid.NewV7()),
		RequestID:   requestID,
		ModeratorID: moderatorID,
		Capability:  capability,
		Path:        path,
		Metadata:    metadata,
		CreatedAt:   a.now().Truncate(time.Microsecond),
	}

	// Sign when a key is configured; unsigned logs stay verifiable as "unsigned"
	if len(a.signingKey) > 0 {
		signature, err := a.signer.Sign(a.signingKey, auditLog)
		if err != nil {
			return apperrors.Wrap(err, "failed to sign audit log")
		}
		auditLog.Signature = signature
	}

	// Persist audit log
	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List retrieves audit logs ordered by created_at descending with optional time filters.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.List(ctx, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}

	return auditLogs, nil
}

// VerifyBatch walks every log in the range and checks its signature. Unsigned logs are
// counted separately and never reported as invalid.
func (a *auditLogUseCase) VerifyBatch(
	ctx context.Context,
	startTime, endTime time.Time,
) (*authDomain.VerificationReport, error) {
	if len(a.signingKey) == 0 {
		return nil, ErrSigningKeyNotConfigured
	}

	report := &authDomain.VerificationReport{InvalidLogs: []uuid.UUID{}}

	for offset := 0; ; offset += verifyBatchSize {
		auditLogs, err := a.auditLogRepo.List(ctx, offset, verifyBatchSize, &startTime, &endTime)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit logs")
		}

		for _, auditLog := range auditLogs {
			report.TotalChecked++
			if !auditLog.IsSigned() {
				report.UnsignedCount++
				continue
			}
			report.SignedCount++

			err := a.signer.Verify(a.signingKey, auditLog)
			switch {
			case err == nil:
				report.ValidCount++
			case errors.Is(err, authDomain.ErrSignatureInvalid):
				report.InvalidCount++
				report.InvalidLogs = append(report.InvalidLogs, auditLog.ID)
			default:
				return nil, err
			}
		}

		if len(auditLogs) < verifyBatchSize {
			return report, nil
		}
	}
}

// DeleteOlderThan removes audit logs older than the given number of days.
func (a *auditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be a non-negative number")
	}

	before := a.now().AddDate(0, 0, -days)
	count, err := a.auditLogRepo.DeleteOlderThan(ctx, before, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}

	return count, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase. A nil or empty signingKey disables
// signing.
func NewAuditLogUseCase(
	auditLogRepo AuditLogRepository,
	signer authService.AuditSigner,
	signingKey []byte,
) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		signer:       signer,
		signingKey:   signingKey,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

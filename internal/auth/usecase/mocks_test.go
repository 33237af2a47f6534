package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

type mockModeratorRepository struct {
	mock.Mock
}

func (m *mockModeratorRepository) Create(ctx context.Context, moderator *authDomain.Moderator) error {
	return m.Called(ctx, moderator).Error(0)
}

func (m *mockModeratorRepository) Update(ctx context.Context, moderator *authDomain.Moderator) error {
	return m.Called(ctx, moderator).Error(0)
}

func (m *mockModeratorRepository) Get(ctx context.Context, moderatorID uuid.UUID) (*authDomain.Moderator, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Moderator), args.Error(1)
}

func (m *mockModeratorRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Moderator, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Moderator), args.Error(1)
}

func (m *mockModeratorRepository) UpdateLockState(
	ctx context.Context,
	moderatorID uuid.UUID,
	failedAttempts int,
	lockedUntil *time.Time,
) error {
	return m.Called(ctx, moderatorID, failedAttempts, lockedUntil).Error(0)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *mockTokenRepository) DeleteExpired(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, before, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	return m.Called(ctx, auditLog).Error(0)
}

func (m *mockAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

func (m *mockAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, before, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (string, error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret, hashedSecret string) bool {
	return m.Called(plainSecret, hashedSecret).Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	return m.Called(plainToken).String(0)
}

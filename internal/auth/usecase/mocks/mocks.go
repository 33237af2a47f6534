// Package mocks provides mock implementations of the auth use cases for handler and
// middleware tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockModeratorUseCase is a mock implementation of ModeratorUseCase.
type MockModeratorUseCase struct {
	mock.Mock
}

// NewMockModeratorUseCase creates a MockModeratorUseCase whose expectations are asserted on cleanup.
func NewMockModeratorUseCase(t testingT) *MockModeratorUseCase {
	m := &MockModeratorUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockModeratorUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateModeratorInput,
) (*authDomain.CreateModeratorOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateModeratorOutput), args.Error(1)
}

func (m *MockModeratorUseCase) Get(ctx context.Context, moderatorID uuid.UUID) (*authDomain.Moderator, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Moderator), args.Error(1)
}

func (m *MockModeratorUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.Moderator, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Moderator), args.Error(1)
}

func (m *MockModeratorUseCase) Deactivate(ctx context.Context, moderatorID uuid.UUID) error {
	return m.Called(ctx, moderatorID).Error(0)
}

func (m *MockModeratorUseCase) Unlock(ctx context.Context, moderatorID uuid.UUID) error {
	return m.Called(ctx, moderatorID).Error(0)
}

// MockTokenUseCase is a mock implementation of TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

// NewMockTokenUseCase creates a MockTokenUseCase whose expectations are asserted on cleanup.
func NewMockTokenUseCase(t testingT) *MockTokenUseCase {
	m := &MockTokenUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssueTokenOutput), args.Error(1)
}

func (m *MockTokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Moderator, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Moderator), args.Error(1)
}

func (m *MockTokenUseCase) PurgeExpired(ctx context.Context, olderThan time.Duration, dryRun bool) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase.
type MockAuditLogUseCase struct {
	mock.Mock
}

// NewMockAuditLogUseCase creates a MockAuditLogUseCase whose expectations are asserted on cleanup.
func NewMockAuditLogUseCase(t testingT) *MockAuditLogUseCase {
	m := &MockAuditLogUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditLogUseCase) Create(
	ctx context.Context,
	requestID uuid.UUID,
	moderatorID uuid.UUID,
	capability string,
	path string,
	metadata map[string]any,
) error {
	return m.Called(ctx, requestID, moderatorID, capability, path, metadata).Error(0)
}

func (m *MockAuditLogUseCase) List(
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

func (m *MockAuditLogUseCase) VerifyBatch(
	ctx context.Context,
	startTime, endTime time.Time,
) (*authDomain.VerificationReport, error) {
	args := m.Called(ctx, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.VerificationReport), args.Error(1)
}

func (m *MockAuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

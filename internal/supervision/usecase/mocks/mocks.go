// Package mocks provides mock implementations of the supervision use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockWorkflowUseCase is a mock implementation of WorkflowUseCase.
type MockWorkflowUseCase struct {
	mock.Mock
}

// NewMockWorkflowUseCase creates a MockWorkflowUseCase whose expectations are asserted on cleanup.
func NewMockWorkflowUseCase(t testingT) *MockWorkflowUseCase {
	m := &MockWorkflowUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWorkflowUseCase) Submit(
	ctx context.Context,
	input *supervisionDomain.SubmitInput,
) (*supervisionDomain.Request, error) {
	args := m.Called(ctx, input)
	return requestOrNil(args)
}

func (m *MockWorkflowUseCase) Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	args := m.Called(ctx, id)
	return requestOrNil(args)
}

func (m *MockWorkflowUseCase) List(
	ctx context.Context,
	status *supervisionDomain.Status,
	offset, limit int,
) ([]*supervisionDomain.Request, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supervisionDomain.Request), args.Error(1)
}

func (m *MockWorkflowUseCase) Approve(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
) (*supervisionDomain.Request, error) {
	args := m.Called(ctx, id, decidedBy)
	return requestOrNil(args)
}

func (m *MockWorkflowUseCase) Reject(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
) (*supervisionDomain.Request, error) {
	args := m.Called(ctx, id, decidedBy)
	return requestOrNil(args)
}

func requestOrNil(args mock.Arguments) (*supervisionDomain.Request, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supervisionDomain.Request), args.Error(1)
}

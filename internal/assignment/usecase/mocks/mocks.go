// Package mocks provides mock implementations of the assignment use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockDirectoryUseCase is a mock implementation of DirectoryUseCase.
type MockDirectoryUseCase struct {
	mock.Mock
}

// NewMockDirectoryUseCase creates a MockDirectoryUseCase whose expectations are asserted on cleanup.
func NewMockDirectoryUseCase(t testingT) *MockDirectoryUseCase {
	m := &MockDirectoryUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDirectoryUseCase) Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignmentDomain.Assignment), args.Error(1)
}

func (m *MockDirectoryUseCase) Save(ctx context.Context, assignment *assignmentDomain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

// MockMatcherUseCase is a mock implementation of MatcherUseCase.
type MockMatcherUseCase struct {
	mock.Mock
}

// NewMockMatcherUseCase creates a MockMatcherUseCase whose expectations are asserted on cleanup.
func NewMockMatcherUseCase(t testingT) *MockMatcherUseCase {
	m := &MockMatcherUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMatcherUseCase) AssignVet(ctx context.Context, farmID, vetID, vetName, vetPhone string) error {
	args := m.Called(ctx, farmID, vetID, vetName, vetPhone)
	return args.Error(0)
}

func (m *MockMatcherUseCase) AssignSupervisor(
	ctx context.Context,
	farmID, supervisorID, supervisorName, supervisorPhone string,
) error {
	args := m.Called(ctx, farmID, supervisorID, supervisorName, supervisorPhone)
	return args.Error(0)
}

func (m *MockMatcherUseCase) RemoveVet(ctx context.Context, farmID string) error {
	args := m.Called(ctx, farmID)
	return args.Error(0)
}

func (m *MockMatcherUseCase) RemoveSupervisor(ctx context.Context, farmID string) error {
	args := m.Called(ctx, farmID)
	return args.Error(0)
}

func (m *MockMatcherUseCase) Assign(
	ctx context.Context,
	farmID string,
	placements ...assignmentDomain.Placement,
) error {
	args := m.Called(ctx, farmID, placements)
	return args.Error(0)
}

// MockCandidateUseCase is a mock implementation of CandidateUseCase.
type MockCandidateUseCase struct {
	mock.Mock
}

// NewMockCandidateUseCase creates a MockCandidateUseCase whose expectations are asserted on cleanup.
func NewMockCandidateUseCase(t testingT) *MockCandidateUseCase {
	m := &MockCandidateUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCandidateUseCase) List(
	ctx context.Context,
	role assignmentDomain.Role,
	offset, limit int,
) ([]*assignmentDomain.Candidate, error) {
	args := m.Called(ctx, role, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignmentDomain.Candidate), args.Error(1)
}

func (m *MockCandidateUseCase) Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

// MockFarmUseCase is a mock implementation of FarmUseCase.
type MockFarmUseCase struct {
	mock.Mock
}

// NewMockFarmUseCase creates a MockFarmUseCase whose expectations are asserted on cleanup.
func NewMockFarmUseCase(t testingT) *MockFarmUseCase {
	m := &MockFarmUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockFarmUseCase) Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignmentDomain.Farm), args.Error(1)
}

func (m *MockFarmUseCase) List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignmentDomain.Farm), args.Error(1)
}

func (m *MockFarmUseCase) Ensure(ctx context.Context, farm *assignmentDomain.Farm) (*assignmentDomain.Farm, error) {
	args := m.Called(ctx, farm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignmentDomain.Farm), args.Error(1)
}

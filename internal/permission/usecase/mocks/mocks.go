// Package mocks provides mock implementations of the permission use cases for handler
// and middleware tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockGrantUseCase is a mock implementation of GrantUseCase.
type MockGrantUseCase struct {
	mock.Mock
}

// NewMockGrantUseCase creates a MockGrantUseCase whose expectations are asserted on cleanup.
func NewMockGrantUseCase(t testingT) *MockGrantUseCase {
	m := &MockGrantUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method of GrantUseCase.
func (m *MockGrantUseCase) Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.Grant), args.Error(1)
}

// SetCapability mocks the SetCapability method of GrantUseCase.
func (m *MockGrantUseCase) SetCapability(ctx context.Context, moderatorID, capabilityID string, enabled bool) error {
	args := m.Called(ctx, moderatorID, capabilityID, enabled)
	return args.Error(0)
}

// SetSubOption mocks the SetSubOption method of GrantUseCase.
func (m *MockGrantUseCase) SetSubOption(
	ctx context.Context,
	moderatorID, capabilityID, subOptionID string,
	enabled bool,
) error {
	args := m.Called(ctx, moderatorID, capabilityID, subOptionID, enabled)
	return args.Error(0)
}

// Replace mocks the Replace method of GrantUseCase.
func (m *MockGrantUseCase) Replace(ctx context.Context, moderatorID string, grant *permissionDomain.Grant) error {
	args := m.Called(ctx, moderatorID, grant)
	return args.Error(0)
}

// MockResolverUseCase is a mock implementation of ResolverUseCase.
type MockResolverUseCase struct {
	mock.Mock
}

// NewMockResolverUseCase creates a MockResolverUseCase whose expectations are asserted on cleanup.
func NewMockResolverUseCase(t testingT) *MockResolverUseCase {
	m := &MockResolverUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Resolve mocks the Resolve method of ResolverUseCase.
func (m *MockResolverUseCase) Resolve(
	ctx context.Context,
	moderatorID string,
) (*permissionDomain.EffectivePermissionSet, error) {
	args := m.Called(ctx, moderatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permissionDomain.EffectivePermissionSet), args.Error(1)
}

// HasCapability mocks the HasCapability method of ResolverUseCase.
func (m *MockResolverUseCase) HasCapability(ctx context.Context, moderatorID, id string) (bool, error) {
	args := m.Called(ctx, moderatorID, id)
	return args.Bool(0), args.Error(1)
}

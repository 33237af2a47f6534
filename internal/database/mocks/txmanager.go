// Package mocks provides mock implementations of the database abstractions for use case tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager. When the configured
// return value is nil the callback runs with the caller's context.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a MockTxManager whose expectations are asserted on test cleanup.
func NewMockTxManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTxManager {
	m := &MockTxManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// PassthroughTxManager runs the callback directly. Use it where the transaction boundary
// itself is not under test.
type PassthroughTxManager struct{}

// WithTx runs fn with ctx.
func (PassthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/vetdesk/internal/metrics"
	permissionMocks "github.com/allisson/vetdesk/internal/permission/usecase/mocks"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordDecision(ctx context.Context, capability string, allowed bool) {
	m.Called(ctx, capability, allowed)
}

func TestGrantUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		operation string
		err       error
		status    string
		call      func(GrantUseCase) error
		setup     func(*permissionMocks.MockGrantUseCase, error)
	}{
		{
			name:      "set capability success",
			operation: "grant_set_capability",
			status:    "success",
			setup: func(m *permissionMocks.MockGrantUseCase, err error) {
				m.On("SetCapability", ctx, "m-1", "ads_control", true).Return(err)
			},
			call: func(u GrantUseCase) error { return u.SetCapability(ctx, "m-1", "ads_control", true) },
		},
		{
			name:      "set sub-option error",
			operation: "grant_set_sub_option",
			err:       permissionDomain.ErrUnknownCapability,
			status:    "error",
			setup: func(m *permissionMocks.MockGrantUseCase, err error) {
				m.On("SetSubOption", ctx, "m-1", "ads_control", "nope", true).Return(err)
			},
			call: func(u GrantUseCase) error { return u.SetSubOption(ctx, "m-1", "ads_control", "nope", true) },
		},
		{
			name:      "replace success",
			operation: "grant_replace",
			status:    "success",
			setup: func(m *permissionMocks.MockGrantUseCase, err error) {
				m.On("Replace", ctx, "m-1", mock.Anything).Return(err)
			},
			call: func(u GrantUseCase) error { return u.Replace(ctx, "m-1", permissionDomain.NewGrant("m-1")) },
		},
		{
			name:      "get error",
			operation: "grant_get",
			err:       errors.New("db down"),
			status:    "error",
			setup: func(m *permissionMocks.MockGrantUseCase, err error) {
				m.On("Get", ctx, "m-1").Return(nil, err)
			},
			call: func(u GrantUseCase) error {
				_, err := u.Get(ctx, "m-1")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := permissionMocks.NewMockGrantUseCase(t)
			m := &mockBusinessMetrics{}
			tt.setup(next, tt.err)
			m.On("RecordOperation", ctx, metrics.DomainPermission, tt.operation, tt.status).Once()
			m.On("RecordDuration", ctx, metrics.DomainPermission, tt.operation, mock.AnythingOfType("time.Duration"), tt.status).
				Once()

			err := tt.call(NewGrantUseCaseWithMetrics(next, m))

			assert.Equal(t, tt.err, err)
			m.AssertExpectations(t)
		})
	}
}

func TestResolverUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolve", func(t *testing.T) {
		next := permissionMocks.NewMockResolverUseCase(t)
		m := &mockBusinessMetrics{}
		set := permissionDomain.Resolve(permissionDomain.DefaultCatalog(), permissionDomain.NewGrant("m-1"))
		next.On("Resolve", ctx, "m-1").Return(set, nil)
		m.On("RecordOperation", ctx, metrics.DomainPermission, "resolve", "success").Once()
		m.On("RecordDuration", ctx, metrics.DomainPermission, "resolve", mock.AnythingOfType("time.Duration"), "success").
			Once()

		result, err := NewResolverUseCaseWithMetrics(next, m).Resolve(ctx, "m-1")

		require.NoError(t, err)
		assert.Same(t, set, result)
		m.AssertExpectations(t)
	})

	t.Run("HasCapability records decisions", func(t *testing.T) {
		next := permissionMocks.NewMockResolverUseCase(t)
		m := &mockBusinessMetrics{}
		next.On("HasCapability", ctx, "m-1", "ads_control").Return(true, nil).Once()
		next.On("HasCapability", ctx, "m-2", "ads_control").Return(false, errors.New("db down")).Once()
		m.On("RecordDecision", ctx, "ads_control", true).Once()
		m.On("RecordDecision", ctx, "ads_control", false).Once()

		useCase := NewResolverUseCaseWithMetrics(next, m)
		allowed, err := useCase.HasCapability(ctx, "m-1", "ads_control")
		require.NoError(t, err)
		assert.True(t, allowed)

		_, err = useCase.HasCapability(ctx, "m-2", "ads_control")
		assert.Error(t, err)

		m.AssertExpectations(t)
	})
}

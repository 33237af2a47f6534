package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/vetdesk/internal/database/mocks"
	outboxDomain "github.com/allisson/vetdesk/internal/outbox/domain"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

func newGrantTestUseCase(t *testing.T) (GrantUseCase, *memoryGrantRepository, *mockEventPublisher) {
	t.Helper()
	repo := newMemoryGrantRepository()
	publisher := &mockEventPublisher{}
	publisher.Test(t)
	t.Cleanup(func() { publisher.AssertExpectations(t) })

	useCase := NewGrantUseCase(
		databaseMocks.PassthroughTxManager{},
		repo,
		publisher,
		permissionDomain.DefaultCatalog(),
	)
	return useCase, repo, publisher
}

func grantChanged(moderatorID string) outboxDomain.GrantChanged {
	return outboxDomain.GrantChanged{ModeratorID: moderatorID}
}

func TestGrantUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EmptyWhenAbsent", func(t *testing.T) {
		useCase, _, _ := newGrantTestUseCase(t)

		grant, err := useCase.Get(ctx, "m-1")

		require.NoError(t, err)
		assert.Equal(t, "m-1", grant.ModeratorID)
		assert.Empty(t, grant.Capabilities)
		assert.Empty(t, grant.SubOptions)
		assert.Nil(t, grant.UpdatedAt)
	})

	t.Run("Error_BlankModerator", func(t *testing.T) {
		useCase, _, _ := newGrantTestUseCase(t)

		_, err := useCase.Get(ctx, "")

		assert.ErrorIs(t, err, permissionDomain.ErrInvalidModerator)
	})
}

func TestGrantUseCase_SetCapability(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_UpsertsAndPublishes", func(t *testing.T) {
		useCase, repo, publisher := newGrantTestUseCase(t)
		publisher.On("Publish", mock.Anything, outboxDomain.EventTypeGrantChanged, grantChanged("m-1")).
			Return(nil).Twice()

		require.NoError(t, useCase.SetCapability(ctx, "m-1", "ads_control", true))
		require.NoError(t, useCase.SetCapability(ctx, "m-1", "ads_control", true))

		grant, err := useCase.Get(ctx, "m-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"ads_control": true}, grant.Capabilities)
		assert.NotNil(t, grant.UpdatedAt)
		assert.Equal(t, 1, repo.size("m-1"))
	})

	t.Run("Success_KeepsOtherKeys", func(t *testing.T) {
		useCase, _, publisher := newGrantTestUseCase(t)
		publisher.On("Publish", mock.Anything, outboxDomain.EventTypeGrantChanged, grantChanged("m-1")).
			Return(nil)

		require.NoError(t, useCase.SetSubOption(ctx, "m-1", "ads_control", "ads_add", true))
		require.NoError(t, useCase.SetCapability(ctx, "m-1", "ads_control", false))

		grant, err := useCase.Get(ctx, "m-1")
		require.NoError(t, err)
		assert.False(t, grant.Capabilities["ads_control"])
		assert.True(t, grant.SubOptions["ads_add"])
	})

	t.Run("Error_UnknownCapabilityLeavesStateUntouched", func(t *testing.T) {
		for _, id := range []string{"time_travel", "pets_section", ""} {
			useCase, repo, _ := newGrantTestUseCase(t)

			err := useCase.SetCapability(ctx, "m-1", id, true)

			assert.ErrorIs(t, err, permissionDomain.ErrUnknownCapability, id)
			assert.Equal(t, 0, repo.size("m-1"), id)
		}
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		useCase, repo, _ := newGrantTestUseCase(t)
		repo.failOn = "upsert"

		err := useCase.SetCapability(ctx, "m-1", "ads_control", true)

		assert.ErrorIs(t, err, errStorage)
	})

	t.Run("Error_PublishFailure", func(t *testing.T) {
		repo := newMemoryGrantRepository()
		publisher := &mockEventPublisher{}
		publishErr := errors.New("outbox down")
		publisher.On("Publish", mock.Anything, outboxDomain.EventTypeGrantChanged, grantChanged("m-1")).
			Return(publishErr)
		txManager := databaseMocks.NewMockTxManager(t)
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()

		useCase := NewGrantUseCase(txManager, repo, publisher, permissionDomain.DefaultCatalog())
		err := useCase.SetCapability(ctx, "m-1", "ads_control", true)

		assert.ErrorIs(t, err, publishErr)
		publisher.AssertExpectations(t)
	})
}

func TestGrantUseCase_SetSubOption(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		capability  string
		subOption   string
		expectedErr error
	}{
		{name: "valid pair", capability: "sections_control", subOption: "pets_section"},
		{
			name:        "sub-option of another category",
			capability:  "ads_control",
			subOption:   "pets_section",
			expectedErr: permissionDomain.ErrUnknownCapability,
		},
		{
			name:        "unknown parent",
			capability:  "time_travel",
			subOption:   "pets_section",
			expectedErr: permissionDomain.ErrUnknownCapability,
		},
		{
			name:        "category passed as sub-option",
			capability:  "sections_control",
			subOption:   "ads_control",
			expectedErr: permissionDomain.ErrUnknownCapability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase, repo, publisher := newGrantTestUseCase(t)
			if tt.expectedErr == nil {
				publisher.On("Publish", mock.Anything, outboxDomain.EventTypeGrantChanged, grantChanged("m-1")).
					Return(nil).Once()
			}

			err := useCase.SetSubOption(ctx, "m-1", tt.capability, tt.subOption, true)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, 0, repo.size("m-1"))
				return
			}
			require.NoError(t, err)
			grant, err := useCase.Get(ctx, "m-1")
			require.NoError(t, err)
			assert.True(t, grant.SubOptions[tt.subOption])
		})
	}
}

func TestGrantUseCase_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReplacesWholeRecord", func(t *testing.T) {
		useCase, _, publisher := newGrantTestUseCase(t)
		publisher.On("Publish", mock.Anything, outboxDomain.EventTypeGrantChanged, grantChanged("m-1")).
			Return(nil)

		require.NoError(t, useCase.SetCapability(ctx, "m-1", "ads_control", true))

		err := useCase.Replace(ctx, "m-1", &permissionDomain.Grant{
			ModeratorID:  "ignored",
			Capabilities: map[string]bool{"sections_control": true},
			SubOptions:   map[string]bool{"pets_section": true, "clinics_section": false},
		})
		require.NoError(t, err)

		grant, err := useCase.Get(ctx, "m-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"sections_control": true}, grant.Capabilities)
		assert.Equal(t, map[string]bool{"pets_section": true, "clinics_section": false}, grant.SubOptions)
	})

	t.Run("Error_InvalidGrantSetLeavesPriorGrant", func(t *testing.T) {
		useCase, repo, publisher := newGrantTestUseCase(t)
		publisher.On("Publish", mock.Anything, outboxDomain.EventTypeGrantChanged, grantChanged("m-1")).
			Return(nil).Once()
		require.NoError(t, useCase.SetCapability(ctx, "m-1", "ads_control", true))

		err := useCase.Replace(ctx, "m-1", &permissionDomain.Grant{
			Capabilities: map[string]bool{"sections_control": true, "bogus": true},
			SubOptions:   map[string]bool{"also_bogus": false},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, permissionDomain.ErrInvalidGrantSet)
		assert.Contains(t, err.Error(), "also_bogus, bogus")

		grant, err := useCase.Get(ctx, "m-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"ads_control": true}, grant.Capabilities)
		assert.Equal(t, 1, repo.size("m-1"))
	})

	t.Run("Error_TransactionFailure", func(t *testing.T) {
		repo := newMemoryGrantRepository()
		publisher := &mockEventPublisher{}
		txErr := errors.New("begin failed")
		txManager := databaseMocks.NewMockTxManager(t)
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(txErr).Once()

		useCase := NewGrantUseCase(txManager, repo, publisher, permissionDomain.DefaultCatalog())
		err := useCase.Replace(ctx, "m-1", permissionDomain.NewGrant("m-1"))

		assert.ErrorIs(t, err, txErr)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InsertFailure", func(t *testing.T) {
		useCase, repo, _ := newGrantTestUseCase(t)
		repo.failOn = "insert"

		err := useCase.Replace(ctx, "m-1", permissionDomain.NewGrant("m-1"))

		assert.ErrorIs(t, err, errStorage)
	})
}

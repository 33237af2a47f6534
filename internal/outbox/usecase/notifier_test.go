package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/vetdesk/internal/outbox/domain"
)

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) GrantChanged(ctx context.Context, event domain.GrantChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotifier) AssignmentChanged(ctx context.Context, event domain.AssignmentChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockNotifier) RequestDecided(ctx context.Context, event domain.RequestDecided) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func mustEvent(t *testing.T, eventType string, payload any) *domain.OutboxEvent {
	t.Helper()
	event, err := domain.NewOutboxEvent(eventType, payload)
	require.NoError(t, err)
	return event
}

func TestNotifierEventProcessor_Process(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		event *domain.OutboxEvent
		setup func(n *MockNotifier)
	}{
		{
			name:  "grant changed",
			event: mustEvent(t, domain.EventTypeGrantChanged, domain.GrantChanged{ModeratorID: "m-1"}),
			setup: func(n *MockNotifier) {
				n.On("GrantChanged", ctx, domain.GrantChanged{ModeratorID: "m-1"}).Return(nil)
			},
		},
		{
			name: "assignment changed",
			event: mustEvent(t, domain.EventTypeAssignmentChanged, domain.AssignmentChanged{
				FarmID:     "farm-1",
				Role:       "supervisor",
				AssigneeID: "s-1",
			}),
			setup: func(n *MockNotifier) {
				n.On("AssignmentChanged", ctx, domain.AssignmentChanged{
					FarmID:     "farm-1",
					Role:       "supervisor",
					AssigneeID: "s-1",
				}).Return(nil)
			},
		},
		{
			name: "request decided",
			event: mustEvent(t, domain.EventTypeRequestDecided, domain.RequestDecided{
				RequestID: "r-1",
				Status:    "approved",
			}),
			setup: func(n *MockNotifier) {
				n.On("RequestDecided", ctx, domain.RequestDecided{RequestID: "r-1", Status: "approved"}).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &MockNotifier{}
			tt.setup(notifier)

			processor := NewNotifierEventProcessor(notifier, nil)
			err := processor.Process(ctx, tt.event)

			assert.NoError(t, err)
			notifier.AssertExpectations(t)
		})
	}
}

func TestNotifierEventProcessor_Process_NotifierError(t *testing.T) {
	ctx := context.Background()
	notifier := &MockNotifier{}
	notifier.On("GrantChanged", ctx, domain.GrantChanged{ModeratorID: "m-1"}).Return(assert.AnError)

	processor := NewNotifierEventProcessor(notifier, nil)
	err := processor.Process(ctx, mustEvent(t, domain.EventTypeGrantChanged, domain.GrantChanged{ModeratorID: "m-1"}))

	assert.ErrorIs(t, err, assert.AnError)
}

func TestNotifierEventProcessor_Process_UnknownEventType(t *testing.T) {
	notifier := &MockNotifier{}
	processor := NewNotifierEventProcessor(notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := processor.Process(context.Background(), &domain.OutboxEvent{
		EventType: "unknown.event",
		Payload:   `{"data": "test"}`,
	})

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "GrantChanged", mock.Anything, mock.Anything)
}

func TestNotifierEventProcessor_Process_InvalidJSON(t *testing.T) {
	processor := NewNotifierEventProcessor(&MockNotifier{}, nil)

	err := processor.Process(context.Background(), &domain.OutboxEvent{
		EventType: domain.EventTypeRequestDecided,
		Payload:   `invalid json`,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request.decided payload")
}

func TestLogNotifier(t *testing.T) {
	notifier := NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.NoError(t, notifier.GrantChanged(ctx, domain.GrantChanged{ModeratorID: "m-1"}))
	assert.NoError(t, notifier.AssignmentChanged(ctx, domain.AssignmentChanged{FarmID: "f-1", Role: "vet"}))
	assert.NoError(t, notifier.RequestDecided(ctx, domain.RequestDecided{RequestID: "r-1", Status: "rejected"}))
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	outboxRepo := &mockOutboxRepository{}
	outboxRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
		return e.EventType == domain.EventTypeAssignmentChanged &&
			e.Status == domain.OutboxEventStatusPending &&
			e.Payload == `{"farm_id":"farm-1","role":"vet","assignee_id":"v1"}`
	})).Return(nil)

	publisher := NewPublisher(outboxRepo)
	err := publisher.Publish(ctx, domain.EventTypeAssignmentChanged, domain.AssignmentChanged{
		FarmID:     "farm-1",
		Role:       "vet",
		AssigneeID: "v1",
	})

	assert.NoError(t, err)
	outboxRepo.AssertExpectations(t)
}

func TestPublisher_Publish_EncodeError(t *testing.T) {
	outboxRepo := &mockOutboxRepository{}
	publisher := NewPublisher(outboxRepo)

	err := publisher.Publish(context.Background(), domain.EventTypeGrantChanged, func() {})

	assert.Error(t, err)
	outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

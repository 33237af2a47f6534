package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// memoryGrantRepository keeps grants in memory so properties can be checked end to end.
type memoryGrantRepository struct {
	mu      sync.Mutex
	entries map[string]map[string]memoryEntry
	failOn  string
}

type memoryEntry struct {
	kind    permissionDomain.Kind
	enabled bool
	at      time.Time
}

var errStorage = errors.New("storage unavailable")

func newMemoryGrantRepository() *memoryGrantRepository {
	return &memoryGrantRepository{entries: make(map[string]map[string]memoryEntry)}
}

func (r *memoryGrantRepository) Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "get" {
		return nil, errStorage
	}

	grant := permissionDomain.NewGrant(moderatorID)
	for id, e := range r.entries[moderatorID] {
		if e.kind == permissionDomain.KindCategory {
			grant.Capabilities[id] = e.enabled
		} else {
			grant.SubOptions[id] = e.enabled
		}
		at := e.at
		grant.UpdatedAt = &at
	}
	return grant, nil
}

func (r *memoryGrantRepository) Upsert(
	ctx context.Context,
	moderatorID, id string,
	kind permissionDomain.Kind,
	enabled bool,
	updatedAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "upsert" {
		return errStorage
	}
	if r.entries[moderatorID] == nil {
		r.entries[moderatorID] = make(map[string]memoryEntry)
	}
	r.entries[moderatorID][id] = memoryEntry{kind: kind, enabled: enabled, at: updatedAt}
	return nil
}

func (r *memoryGrantRepository) DeleteAll(ctx context.Context, moderatorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, moderatorID)
	return nil
}

func (r *memoryGrantRepository) Insert(
	ctx context.Context,
	grant *permissionDomain.Grant,
	updatedAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "insert" {
		return errStorage
	}
	entries := make(map[string]memoryEntry)
	for id, enabled := range grant.Capabilities {
		entries[id] = memoryEntry{kind: permissionDomain.KindCategory, enabled: enabled, at: updatedAt}
	}
	for id, enabled := range grant.SubOptions {
		entries[id] = memoryEntry{kind: permissionDomain.KindSubOption, enabled: enabled, at: updatedAt}
	}
	r.entries[grant.ModeratorID] = entries
	return nil
}

func (r *memoryGrantRepository) size(moderatorID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries[moderatorID])
}

// mockEventPublisher is a mock implementation of EventPublisher for testing.
type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

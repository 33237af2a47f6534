package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	outboxDomain "github.com/allisson/vetdesk/internal/outbox/domain"
)

var errStorage = errors.New("storage unavailable")

// memoryAssignmentRepository mimics the SQL repositories, including the compare-and-swap
// on FillSlot, so the matcher can be exercised concurrently.
type memoryAssignmentRepository struct {
	mu     sync.Mutex
	rows   map[string]*assignmentDomain.Assignment
	failOn string
}

func newMemoryAssignmentRepository() *memoryAssignmentRepository {
	return &memoryAssignmentRepository{rows: make(map[string]*assignmentDomain.Assignment)}
}

func copyAssignee(a *assignmentDomain.Assignee) *assignmentDomain.Assignee {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (r *memoryAssignmentRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "get" {
		return nil, errStorage
	}

	row, ok := r.rows[farmID]
	if !ok {
		return assignmentDomain.NewAssignment(farmID), nil
	}
	return &assignmentDomain.Assignment{
		FarmID:     farmID,
		Vet:        copyAssignee(row.Vet),
		Supervisor: copyAssignee(row.Supervisor),
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (r *memoryAssignmentRepository) Save(
	ctx context.Context,
	assignment *assignmentDomain.Assignment,
	updatedAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[assignment.FarmID] = &assignmentDomain.Assignment{
		FarmID:     assignment.FarmID,
		Vet:        copyAssignee(assignment.Vet),
		Supervisor: copyAssignee(assignment.Supervisor),
		UpdatedAt:  &updatedAt,
	}
	return nil
}

func (r *memoryAssignmentRepository) EnsureRow(ctx context.Context, farmID string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[farmID]; !ok {
		r.rows[farmID] = &assignmentDomain.Assignment{FarmID: farmID, UpdatedAt: &updatedAt}
	}
	return nil
}

func (r *memoryAssignmentRepository) FillSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	assignee *assignmentDomain.Assignee,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "fill" {
		return errStorage
	}

	row, ok := r.rows[farmID]
	if !ok || row.Slot(role) != nil {
		return assignmentDomain.ErrAlreadyAssigned
	}
	row.SetSlot(role, copyAssignee(assignee))
	at := assignee.AssignedAt
	row.UpdatedAt = &at
	return nil
}

func (r *memoryAssignmentRepository) ClearSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	updatedAt time.Time,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[farmID]
	if !ok || row.Slot(role) == nil {
		return false, nil
	}
	row.SetSlot(role, nil)
	row.UpdatedAt = &updatedAt
	return true, nil
}

// memoryCandidateRepository is an in-memory candidate pool keyed by (id, role).
type memoryCandidateRepository struct {
	mu         sync.Mutex
	candidates map[string]*assignmentDomain.Candidate
}

func newMemoryCandidateRepository(candidates ...*assignmentDomain.Candidate) *memoryCandidateRepository {
	r := &memoryCandidateRepository{candidates: make(map[string]*assignmentDomain.Candidate)}
	for _, c := range candidates {
		r.candidates[c.ID+"/"+string(c.Role)] = c
	}
	return r
}

func (r *memoryCandidateRepository) Get(
	ctx context.Context,
	id string,
	role assignmentDomain.Role,
) (*assignmentDomain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id+"/"+string(role)]
	if !ok {
		return nil, assignmentDomain.ErrCandidateNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memoryCandidateRepository) List(
	ctx context.Context,
	role assignmentDomain.Role,
	offset, limit int,
) ([]*assignmentDomain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*assignmentDomain.Candidate
	for _, c := range r.candidates {
		if c.Role == role && c.IsActive {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *assignmentDomain.Candidate) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	if offset >= len(out) {
		return []*assignmentDomain.Candidate{}, nil
	}
	return out[offset:min(len(out), offset+limit)], nil
}

func (r *memoryCandidateRepository) Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *candidate
	r.candidates[candidate.ID+"/"+string(candidate.Role)] = &copied
	return nil
}

// recordingPublisher records every published event and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []outboxDomain.AssignmentChanged
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if eventType == outboxDomain.EventTypeAssignmentChanged {
		p.events = append(p.events, payload.(outboxDomain.AssignmentChanged))
	}
	return nil
}

func (p *recordingPublisher) published() []outboxDomain.AssignmentChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

// mockFarmRepository is a mock implementation of FarmRepository.
type mockFarmRepository struct {
	mock.Mock
}

func (m *mockFarmRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignmentDomain.Farm), args.Error(1)
}

func (m *mockFarmRepository) Create(ctx context.Context, farm *assignmentDomain.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *mockFarmRepository) List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignmentDomain.Farm), args.Error(1)
}

func defaultCandidates() *memoryCandidateRepository {
	return newMemoryCandidateRepository(
		&assignmentDomain.Candidate{ID: "v1", Role: assignmentDomain.RoleVet, Name: "Dr. A", Phone: "+100", IsActive: true},
		&assignmentDomain.Candidate{ID: "v2", Role: assignmentDomain.RoleVet, Name: "Dr. B", Phone: "+200", IsActive: true},
		&assignmentDomain.Candidate{ID: "v3", Role: assignmentDomain.RoleVet, Name: "Dr. C", Phone: "+300"},
		&assignmentDomain.Candidate{
			ID: "s1", Role: assignmentDomain.RoleSupervisor, Name: "Sam", Phone: "+400", IsActive: true,
		},
		&assignmentDomain.Candidate{
			ID: "s2", Role: assignmentDomain.RoleSupervisor, Name: "Sue", Phone: "+500", IsActive: true,
		},
	)
}

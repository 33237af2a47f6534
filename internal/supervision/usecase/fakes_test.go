package usecase

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

var errStorage = errors.New("storage unavailable")

type txKey struct{}

// store is a single in-memory database shared by every fake repository below. Transactions
// are serialized, nested ones join the outer one, and a failed transaction restores the
// snapshot taken when it began.
type store struct {
	txMu        sync.Mutex
	mu          sync.Mutex
	requests    map[uuid.UUID]supervisionDomain.Request
	farms       map[string]assignmentDomain.Farm
	assignments map[string]assignmentDomain.Assignment
	candidates  map[string]assignmentDomain.Candidate
	events      []publishedEvent
	failPublish bool
}

type publishedEvent struct {
	eventType string
	payload   any
}

func newStore() *store {
	return &store{
		requests:    make(map[uuid.UUID]supervisionDomain.Request),
		farms:       make(map[string]assignmentDomain.Farm),
		assignments: make(map[string]assignmentDomain.Assignment),
		candidates:  make(map[string]assignmentDomain.Candidate),
	}
}

func (s *store) addCandidate(id string, role assignmentDomain.Role, name, phone string) {
	s.candidates[id+"/"+string(role)] = assignmentDomain.Candidate{
		ID:       id,
		Role:     role,
		Name:     name,
		Phone:    phone,
		IsActive: true,
	}
}

func (s *store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	requests := maps.Clone(s.requests)
	farms := maps.Clone(s.farms)
	assignments := maps.Clone(s.assignments)
	events := slices.Clone(s.events)
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.requests, s.farms, s.assignments, s.events = requests, farms, assignments, events
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *store) Publish(ctx context.Context, eventType string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPublish {
		return errStorage
	}
	s.events = append(s.events, publishedEvent{eventType: eventType, payload: payload})
	return nil
}

func (s *store) published() []publishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

func (s *store) request(id uuid.UUID) supervisionDomain.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

func (s *store) assignment(farmID string) assignmentDomain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignments[farmID]
}

// requestRepository implements RequestRepository.
type requestRepository struct{ *store }

func (r requestRepository) Create(ctx context.Context, request *supervisionDomain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[request.ID] = *request
	return nil
}

func (r requestRepository) Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, supervisionDomain.ErrRequestNotFound
	}
	return &request, nil
}

func (r requestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	return r.Get(ctx, id)
}

func (r requestRepository) Decide(ctx context.Context, request *supervisionDomain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored := r.requests[request.ID]; stored.Status != supervisionDomain.StatusPending {
		return supervisionDomain.ErrNotPending
	}
	r.requests[request.ID] = *request
	return nil
}

func (r requestRepository) List(
	ctx context.Context,
	status *supervisionDomain.Status,
	offset, limit int,
) ([]*supervisionDomain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]*supervisionDomain.Request, 0)
	for _, request := range r.requests {
		if status != nil && request.Status != *status {
			continue
		}
		requests = append(requests, &request)
	}
	slices.SortFunc(requests, func(a, b *supervisionDomain.Request) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})

	if offset >= len(requests) {
		return []*supervisionDomain.Request{}, nil
	}
	return requests[offset:min(offset+limit, len(requests))], nil
}

// farmRepository implements the assignment FarmRepository.
type farmRepository struct{ *store }

func (r farmRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	farm, ok := r.farms[farmID]
	if !ok {
		return nil, assignmentDomain.ErrFarmNotFound
	}
	return &farm, nil
}

func (r farmRepository) Create(ctx context.Context, farm *assignmentDomain.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.farms[farm.ID]; !ok {
		r.farms[farm.ID] = *farm
	}
	return nil
}

func (r farmRepository) List(ctx context.Context, offset, limit int) ([]*assignmentDomain.Farm, error) {
	return nil, nil
}

// assignmentRepository implements the assignment AssignmentRepository with the same
// compare-and-swap semantics as the SQL implementations.
type assignmentRepository struct{ *store }

func (r assignmentRepository) Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[farmID]
	if !ok {
		return assignmentDomain.NewAssignment(farmID), nil
	}
	return &assignment, nil
}

func (r assignmentRepository) Save(
	ctx context.Context,
	assignment *assignmentDomain.Assignment,
	updatedAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *assignment
	stored.UpdatedAt = &updatedAt
	r.assignments[assignment.FarmID] = stored
	return nil
}

func (r assignmentRepository) EnsureRow(ctx context.Context, farmID string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[farmID]; !ok {
		r.assignments[farmID] = assignmentDomain.Assignment{FarmID: farmID, UpdatedAt: &updatedAt}
	}
	return nil
}

func (r assignmentRepository) FillSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	assignee *assignmentDomain.Assignee,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.assignments[farmID]
	if row.Slot(role) != nil {
		return assignmentDomain.ErrAlreadyAssigned
	}
	filled := *assignee
	row.SetSlot(role, &filled)
	r.assignments[farmID] = row
	return nil
}

func (r assignmentRepository) ClearSlot(
	ctx context.Context,
	farmID string,
	role assignmentDomain.Role,
	updatedAt time.Time,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.assignments[farmID]
	if !ok || row.Slot(role) == nil {
		return false, nil
	}
	row.SetSlot(role, nil)
	r.assignments[farmID] = row
	return true, nil
}

// candidateRepository implements the assignment CandidateRepository.
type candidateRepository struct{ *store }

func (r candidateRepository) Get(
	ctx context.Context,
	id string,
	role assignmentDomain.Role,
) (*assignmentDomain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	candidate, ok := r.candidates[id+"/"+string(role)]
	if !ok {
		return nil, assignmentDomain.ErrCandidateNotFound
	}
	return &candidate, nil
}

func (r candidateRepository) List(
	ctx context.Context,
	role assignmentDomain.Role,
	offset, limit int,
) ([]*assignmentDomain.Candidate, error) {
	return nil, nil
}

func (r candidateRepository) Upsert(ctx context.Context, candidate *assignmentDomain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[candidate.ID+"/"+string(candidate.Role)] = *candidate
	return nil
}

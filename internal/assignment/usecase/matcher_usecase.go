package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	outboxDomain "github.com/allisson/vetdesk/internal/outbox/domain"
)

// matcherUseCase implements MatcherUseCase.
//
// Slot writes are serialized in process by a keyed mutex on (farm, role) and guarded in the
// database by a compare-and-swap update, so concurrent callers in different processes
// still see exactly one winner.
type matcherUseCase struct {
	txManager      database.TxManager
	assignmentRepo AssignmentRepository
	candidateRepo  CandidateRepository
	publisher      EventPublisher
	locks          *SlotLocks
	now            func() time.Time
}

// AssignVet places a vet into an empty vet slot.
func (m *matcherUseCase) AssignVet(ctx context.Context, farmID, vetID, vetName, vetPhone string) error {
	return m.Assign(ctx, farmID, assignmentDomain.Placement{
		Role:        assignmentDomain.RoleVet,
		CandidateID: vetID,
		Name:        vetName,
		Phone:       vetPhone,
	})
}

// AssignSupervisor places a supervisor into an empty supervisor slot.
func (m *matcherUseCase) AssignSupervisor(
	ctx context.Context,
	farmID, supervisorID, supervisorName, supervisorPhone string,
) error {
	return m.Assign(ctx, farmID, assignmentDomain.Placement{
		Role:        assignmentDomain.RoleSupervisor,
		CandidateID: supervisorID,
		Name:        supervisorName,
		Phone:       supervisorPhone,
	})
}

// RemoveVet empties the vet slot.
func (m *matcherUseCase) RemoveVet(ctx context.Context, farmID string) error {
	return m.remove(ctx, farmID, assignmentDomain.RoleVet)
}

// RemoveSupervisor empties the supervisor slot.
func (m *matcherUseCase) RemoveSupervisor(ctx context.Context, farmID string) error {
	return m.remove(ctx, farmID, assignmentDomain.RoleSupervisor)
}

// Assign validates every placement against the candidate pool, locks the slots in role
// order and fills them in one transaction.
func (m *matcherUseCase) Assign(
	ctx context.Context,
	farmID string,
	placements ...assignmentDomain.Placement,
) error {
	if err := assignmentDomain.ValidateFarmID(farmID); err != nil {
		return err
	}
	if len(placements) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "at least one placement is required")
	}

	ordered, err := m.resolvePlacements(ctx, placements)
	if err != nil {
		return err
	}

	roles := make([]assignmentDomain.Role, 0, len(ordered))
	for _, p := range ordered {
		roles = append(roles, p.role)
	}
	unlock := m.locks.Lock(farmID, roles...)
	defer unlock()

	now := m.now()
	return m.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := m.assignmentRepo.EnsureRow(ctx, farmID, now); err != nil {
			return err
		}

		current, err := m.assignmentRepo.Get(ctx, farmID)
		if err != nil {
			return err
		}
		for _, p := range ordered {
			if occupant := current.Slot(p.role); occupant != nil {
				return apperrors.Wrapf(
					assignmentDomain.ErrAlreadyAssigned,
					"farm %s %s slot is held by %s",
					farmID,
					p.role,
					occupant.ID,
				)
			}
		}

		for _, p := range ordered {
			p.assignee.AssignedAt = now
			if err := m.assignmentRepo.FillSlot(ctx, farmID, p.role, p.assignee); err != nil {
				return err
			}
			if err := publishAssignmentChanged(ctx, m.publisher, farmID, p.role, p.assignee.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

type resolvedPlacement struct {
	role     assignmentDomain.Role
	assignee *assignmentDomain.Assignee
}

// resolvePlacements checks roles and candidates and returns the placements in lock order.
// Blank names and phones fall back to the candidate pool entry.
func (m *matcherUseCase) resolvePlacements(
	ctx context.Context,
	placements []assignmentDomain.Placement,
) ([]resolvedPlacement, error) {
	seen := make(map[assignmentDomain.Role]bool, len(placements))
	resolved := make([]resolvedPlacement, 0, len(placements))

	for _, p := range placements {
		if !p.Role.Valid() {
			return nil, assignmentDomain.ErrInvalidRole
		}
		if seen[p.Role] {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "duplicate placement for %s slot", p.Role)
		}
		seen[p.Role] = true

		candidateID := strings.TrimSpace(p.CandidateID)
		if candidateID == "" {
			return nil, apperrors.Wrapf(assignmentDomain.ErrInvalidCandidate, "blank %s id", p.Role)
		}

		candidate, err := m.candidateRepo.Get(ctx, candidateID, p.Role)
		if err != nil {
			if apperrors.Is(err, assignmentDomain.ErrCandidateNotFound) {
				return nil, apperrors.Wrapf(
					assignmentDomain.ErrInvalidCandidate,
					"%s is not a %s candidate",
					candidateID,
					p.Role,
				)
			}
			return nil, err
		}
		if !candidate.Eligible(p.Role) {
			return nil, apperrors.Wrapf(
				assignmentDomain.ErrInvalidCandidate,
				"%s is not an active %s candidate",
				candidateID,
				p.Role,
			)
		}

		resolved = append(resolved, resolvedPlacement{
			role: p.Role,
			assignee: &assignmentDomain.Assignee{
				ID:    candidateID,
				Name:  orDefault(p.Name, candidate.Name),
				Phone: orDefault(p.Phone, candidate.Phone),
			},
		})
	}

	slices.SortFunc(resolved, func(a, b resolvedPlacement) int {
		return slices.Index(assignmentDomain.Roles, a.role) - slices.Index(assignmentDomain.Roles, b.role)
	})
	return resolved, nil
}

func (m *matcherUseCase) remove(ctx context.Context, farmID string, role assignmentDomain.Role) error {
	if err := assignmentDomain.ValidateFarmID(farmID); err != nil {
		return err
	}

	unlock := m.locks.Lock(farmID, role)
	defer unlock()

	now := m.now()
	return m.txManager.WithTx(ctx, func(ctx context.Context) error {
		changed, err := m.assignmentRepo.ClearSlot(ctx, farmID, role, now)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return publishAssignmentChanged(ctx, m.publisher, farmID, role, "")
	})
}

func publishAssignmentChanged(
	ctx context.Context,
	publisher EventPublisher,
	farmID string,
	role assignmentDomain.Role,
	assigneeID string,
) error {
	return publisher.Publish(ctx, outboxDomain.EventTypeAssignmentChanged, outboxDomain.AssignmentChanged{
		FarmID:     farmID,
		Role:       string(role),
		AssigneeID: assigneeID,
	})
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// NewMatcherUseCase creates a new MatcherUseCase. locks must be the instance shared with the
// DirectoryUseCase of the same database.
func NewMatcherUseCase(
	txManager database.TxManager,
	assignmentRepo AssignmentRepository,
	candidateRepo CandidateRepository,
	publisher EventPublisher,
	locks *SlotLocks,
) MatcherUseCase {
	return &matcherUseCase{
		txManager:      txManager,
		assignmentRepo: assignmentRepo,
		candidateRepo:  candidateRepo,
		publisher:      publisher,
		locks:          locks,
		now:            func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

package usecase

import (
	"context"
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/database"
)

// directoryUseCase implements DirectoryUseCase.
type directoryUseCase struct {
	txManager      database.TxManager
	assignmentRepo AssignmentRepository
	publisher      EventPublisher
	locks          *SlotLocks
}

// Get returns the assignment of a farm, empty when nothing was recorded.
func (d *directoryUseCase) Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error) {
	if err := assignmentDomain.ValidateFarmID(farmID); err != nil {
		return nil, err
	}
	return d.assignmentRepo.Get(ctx, farmID)
}

// Save replaces the record and publishes a change event for every slot whose occupant changed.
// It holds both slot locks of the farm, so it never interleaves with a matcher write.
func (d *directoryUseCase) Save(ctx context.Context, assignment *assignmentDomain.Assignment) error {
	if err := assignmentDomain.ValidateFarmID(assignment.FarmID); err != nil {
		return err
	}

	unlock := d.locks.Lock(assignment.FarmID, assignmentDomain.Roles...)
	defer unlock()

	now := time.Now().UTC().Truncate(time.Microsecond)
	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		previous, err := d.assignmentRepo.Get(ctx, assignment.FarmID)
		if err != nil {
			return err
		}

		if err := d.assignmentRepo.Save(ctx, assignment, now); err != nil {
			return err
		}

		for _, role := range assignmentDomain.Roles {
			before, after := occupantID(previous.Slot(role)), occupantID(assignment.Slot(role))
			if before == after {
				continue
			}
			if err := publishAssignmentChanged(ctx, d.publisher, assignment.FarmID, role, after); err != nil {
				return err
			}
		}
		return nil
	})
}

func occupantID(assignee *assignmentDomain.Assignee) string {
	if assignee == nil {
		return ""
	}
	return assignee.ID
}

// NewDirectoryUseCase creates a new DirectoryUseCase.
func NewDirectoryUseCase(
	txManager database.TxManager,
	assignmentRepo AssignmentRepository,
	publisher EventPublisher,
	locks *SlotLocks,
) DirectoryUseCase {
	return &directoryUseCase{
		txManager:      txManager,
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
		locks:          locks,
	}
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	assignmentUseCase "github.com/allisson/vetdesk/internal/assignment/usecase"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	outboxDomain "github.com/allisson/vetdesk/internal/outbox/domain"
	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
	customValidation "github.com/allisson/vetdesk/internal/validation"
)

type workflowUseCase struct {
	txManager   database.TxManager
	requestRepo RequestRepository
	farmUseCase assignmentUseCase.FarmUseCase
	matcher     assignmentUseCase.MatcherUseCase
	publisher   EventPublisher
	now         func() time.Time
}

func (w *workflowUseCase) Submit(
	ctx context.Context,
	input *supervisionDomain.SubmitInput,
) (*supervisionDomain.Request, error) {
	applicant := supervisionDomain.Applicant{
		UserID: strings.TrimSpace(input.Applicant.UserID),
		Name:   strings.TrimSpace(input.Applicant.Name),
		Email:  strings.TrimSpace(input.Applicant.Email),
		Phone:  strings.TrimSpace(input.Applicant.Phone),
	}
	target := supervisionDomain.TargetFarm{
		FarmID:   strings.TrimSpace(input.TargetFarm.FarmID),
		Name:     strings.TrimSpace(input.TargetFarm.Name),
		Location: strings.TrimSpace(input.TargetFarm.Location),
	}

	if err := validateSubmission(&applicant, &target); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	if !input.RequestedRole.Valid() {
		return nil, supervisionDomain.ErrInvalidRequestedRole
	}

	request := &supervisionDomain.Request{
		ID:            uuid.Must(uuid.NewV7()),
		Applicant:     applicant,
		TargetFarm:    target,
		RequestedRole: input.RequestedRole,
		Status:        supervisionDomain.StatusPending,
		SubmittedAt:   w.now(),
	}
	if err := w.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func validateSubmission(applicant *supervisionDomain.Applicant, target *supervisionDomain.TargetFarm) error {
	if err := validation.ValidateStruct(applicant,
		validation.Field(&applicant.UserID, validation.Required, validation.Length(1, 64)),
		validation.Field(&applicant.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&applicant.Email, validation.Required, customValidation.Contact),
		validation.Field(&applicant.Phone, validation.Required, customValidation.Contact),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(target,
		validation.Field(&target.FarmID, validation.Length(0, 64)),
		validation.Field(&target.Name,
			validation.Required.When(target.FarmID == "").Error("farm id or farm name is required"),
			validation.Length(0, 255),
		),
		validation.Field(&target.Location, validation.Length(0, 255)),
	)
}

func (w *workflowUseCase) Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	return w.requestRepo.Get(ctx, id)
}

func (w *workflowUseCase) List(
	ctx context.Context,
	status *supervisionDomain.Status,
	offset, limit int,
) ([]*supervisionDomain.Request, error) {
	return w.requestRepo.List(ctx, status, offset, limit)
}

func (w *workflowUseCase) Approve(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
) (*supervisionDomain.Request, error) {
	var approved *supervisionDomain.Request

	err := w.txManager.WithTx(ctx, func(ctx context.Context) error {
		request, err := w.requestRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return apperrors.Wrapf(supervisionDomain.ErrNotPending, "request %s is %s", request.ID, request.Status)
		}

		farm, err := w.farmUseCase.Ensure(ctx, &assignmentDomain.Farm{
			ID:       request.TargetFarm.FarmID,
			Name:     request.TargetFarm.Name,
			Location: request.TargetFarm.Location,
		})
		if err != nil {
			return err
		}

		if err := w.matcher.Assign(ctx, farm.ID, placementsFor(request)...); err != nil {
			if apperrors.Is(err, assignmentDomain.ErrAlreadyAssigned) {
				return apperrors.Wrapf(supervisionDomain.ErrAssignmentConflict, "request %s: %v", request.ID, err)
			}
			return err
		}

		if err := request.Approve(decidedBy, farm.ID, w.now()); err != nil {
			return err
		}
		if err := w.requestRepo.Decide(ctx, request); err != nil {
			return err
		}
		if err := publishRequestDecided(ctx, w.publisher, request); err != nil {
			return err
		}

		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

func (w *workflowUseCase) Reject(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
) (*supervisionDomain.Request, error) {
	var rejected *supervisionDomain.Request

	err := w.txManager.WithTx(ctx, func(ctx context.Context) error {
		request, err := w.requestRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := request.Reject(decidedBy, w.now()); err != nil {
			return err
		}
		if err := w.requestRepo.Decide(ctx, request); err != nil {
			return err
		}
		if err := publishRequestDecided(ctx, w.publisher, request); err != nil {
			return err
		}

		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// placementsFor places the applicant, as a pool candidate, into every requested slot.
func placementsFor(request *supervisionDomain.Request) []assignmentDomain.Placement {
	slots := request.RequestedRole.Slots()
	placements := make([]assignmentDomain.Placement, 0, len(slots))
	for _, role := range slots {
		placements = append(placements, assignmentDomain.Placement{
			Role:        role,
			CandidateID: request.Applicant.UserID,
			Name:        request.Applicant.Name,
			Phone:       request.Applicant.Phone,
		})
	}
	return placements
}

func publishRequestDecided(ctx context.Context, publisher EventPublisher, request *supervisionDomain.Request) error {
	return publisher.Publish(ctx, outboxDomain.EventTypeRequestDecided, outboxDomain.RequestDecided{
		RequestID: request.ID.String(),
		Status:    string(request.Status),
	})
}

// NewWorkflowUseCase creates a new WorkflowUseCase. The matcher and farm use case must share
// txManager so approval commits or rolls back as one unit.
func NewWorkflowUseCase(
	txManager database.TxManager,
	requestRepo RequestRepository,
	farmUseCase assignmentUseCase.FarmUseCase,
	matcher assignmentUseCase.MatcherUseCase,
	publisher EventPublisher,
) WorkflowUseCase {
	return &workflowUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		farmUseCase: farmUseCase,
		matcher:     matcher,
		publisher:   publisher,
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

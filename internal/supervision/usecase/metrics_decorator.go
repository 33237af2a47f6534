package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/vetdesk/internal/metrics"
	supervisionDomain "github.com/allisson/vetdesk/internal/supervision/domain"
)

// workflowUseCaseWithMetrics decorates WorkflowUseCase with metrics instrumentation.
type workflowUseCaseWithMetrics struct {
	next    WorkflowUseCase
	metrics metrics.BusinessMetrics
}

// NewWorkflowUseCaseWithMetrics wraps a WorkflowUseCase with metrics recording.
func NewWorkflowUseCaseWithMetrics(useCase WorkflowUseCase, m metrics.BusinessMetrics) WorkflowUseCase {
	return &workflowUseCaseWithMetrics{next: useCase, metrics: m}
}

func (w *workflowUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	w.metrics.RecordOperation(ctx, metrics.DomainSupervision, operation, status)
	w.metrics.RecordDuration(ctx, metrics.DomainSupervision, operation, time.Since(start), status)
}

func (w *workflowUseCaseWithMetrics) Submit(
	ctx context.Context,
	input *supervisionDomain.SubmitInput,
) (*supervisionDomain.Request, error) {
	start := time.Now()
	request, err := w.next.Submit(ctx, input)
	w.record(ctx, "request_submit", start, err)
	return request, err
}

func (w *workflowUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*supervisionDomain.Request, error) {
	start := time.Now()
	request, err := w.next.Get(ctx, id)
	w.record(ctx, "request_get", start, err)
	return request, err
}

func (w *workflowUseCaseWithMetrics) List(
	ctx context.Context,
	status *supervisionDomain.Status,
	offset, limit int,
) ([]*supervisionDomain.Request, error) {
	start := time.Now()
	requests, err := w.next.List(ctx, status, offset, limit)
	w.record(ctx, "request_list", start, err)
	return requests, err
}

func (w *workflowUseCaseWithMetrics) Approve(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
) (*supervisionDomain.Request, error) {
	start := time.Now()
	request, err := w.next.Approve(ctx, id, decidedBy)
	w.record(ctx, "request_approve", start, err)
	return request, err
}

func (w *workflowUseCaseWithMetrics) Reject(
	ctx context.Context,
	id uuid.UUID,
	decidedBy string,
) (*supervisionDomain.Request, error) {
	start := time.Now()
	request, err := w.next.Reject(ctx, id, decidedBy)
	w.record(ctx, "request_reject", start, err)
	return request, err
}

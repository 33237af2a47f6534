package usecase

import (
	"context"
	"time"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
	"github.com/allisson/vetdesk/internal/metrics"
)

func recordAssignment(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	m.RecordOperation(ctx, metrics.DomainAssignment, operation, status)
	m.RecordDuration(ctx, metrics.DomainAssignment, operation, time.Since(start), status)
}

// matcherUseCaseWithMetrics decorates MatcherUseCase with metrics instrumentation.
type matcherUseCaseWithMetrics struct {
	next    MatcherUseCase
	metrics metrics.BusinessMetrics
}

// NewMatcherUseCaseWithMetrics wraps a MatcherUseCase with metrics recording.
func NewMatcherUseCaseWithMetrics(useCase MatcherUseCase, m metrics.BusinessMetrics) MatcherUseCase {
	return &matcherUseCaseWithMetrics{next: useCase, metrics: m}
}

func (d *matcherUseCaseWithMetrics) AssignVet(ctx context.Context, farmID, vetID, vetName, vetPhone string) error {
	start := time.Now()
	err := d.next.AssignVet(ctx, farmID, vetID, vetName, vetPhone)
	recordAssignment(ctx, d.metrics, "assign_vet", start, err)
	return err
}

func (d *matcherUseCaseWithMetrics) AssignSupervisor(
	ctx context.Context,
	farmID, supervisorID, supervisorName, supervisorPhone string,
) error {
	start := time.Now()
	err := d.next.AssignSupervisor(ctx, farmID, supervisorID, supervisorName, supervisorPhone)
	recordAssignment(ctx, d.metrics, "assign_supervisor", start, err)
	return err
}

func (d *matcherUseCaseWithMetrics) RemoveVet(ctx context.Context, farmID string) error {
	start := time.Now()
	err := d.next.RemoveVet(ctx, farmID)
	recordAssignment(ctx, d.metrics, "remove_vet", start, err)
	return err
}

func (d *matcherUseCaseWithMetrics) RemoveSupervisor(ctx context.Context, farmID string) error {
	start := time.Now()
	err := d.next.RemoveSupervisor(ctx, farmID)
	recordAssignment(ctx, d.metrics, "remove_supervisor", start, err)
	return err
}

func (d *matcherUseCaseWithMetrics) Assign(
	ctx context.Context,
	farmID string,
	placements ...assignmentDomain.Placement,
) error {
	start := time.Now()
	err := d.next.Assign(ctx, farmID, placements...)
	recordAssignment(ctx, d.metrics, "assign", start, err)
	return err
}

// directoryUseCaseWithMetrics decorates DirectoryUseCase with metrics instrumentation.
type directoryUseCaseWithMetrics struct {
	next    DirectoryUseCase
	metrics metrics.BusinessMetrics
}

// NewDirectoryUseCaseWithMetrics wraps a DirectoryUseCase with metrics recording.
func NewDirectoryUseCaseWithMetrics(useCase DirectoryUseCase, m metrics.BusinessMetrics) DirectoryUseCase {
	return &directoryUseCaseWithMetrics{next: useCase, metrics: m}
}

func (d *directoryUseCaseWithMetrics) Get(ctx context.Context, farmID string) (*assignmentDomain.Assignment, error) {
	start := time.Now()
	assignment, err := d.next.Get(ctx, farmID)
	recordAssignment(ctx, d.metrics, "directory_get", start, err)
	return assignment, err
}

func (d *directoryUseCaseWithMetrics) Save(ctx context.Context, assignment *assignmentDomain.Assignment) error {
	start := time.Now()
	err := d.next.Save(ctx, assignment)
	recordAssignment(ctx, d.metrics, "directory_save", start, err)
	return err
}

package usecase

import (
	"context"
	"time"

	"github.com/allisson/vetdesk/internal/metrics"
	permissionDomain "github.com/allisson/vetdesk/internal/permission/domain"
)

// grantUseCaseWithMetrics decorates GrantUseCase with metrics instrumentation.
type grantUseCaseWithMetrics struct {
	next    GrantUseCase
	metrics metrics.BusinessMetrics
}

// NewGrantUseCaseWithMetrics wraps a GrantUseCase with metrics recording.
func NewGrantUseCaseWithMetrics(useCase GrantUseCase, m metrics.BusinessMetrics) GrantUseCase {
	return &grantUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Get records metrics for grant retrieval.
func (g *grantUseCaseWithMetrics) Get(ctx context.Context, moderatorID string) (*permissionDomain.Grant, error) {
	start := time.Now()
	grant, err := g.next.Get(ctx, moderatorID)
	g.record(ctx, "grant_get", start, err)
	return grant, err
}

// SetCapability records metrics for single category writes.
func (g *grantUseCaseWithMetrics) SetCapability(
	ctx context.Context,
	moderatorID, capabilityID string,
	enabled bool,
) error {
	start := time.Now()
	err := g.next.SetCapability(ctx, moderatorID, capabilityID, enabled)
	g.record(ctx, "grant_set_capability", start, err)
	return err
}

// SetSubOption records metrics for single sub-option writes.
func (g *grantUseCaseWithMetrics) SetSubOption(
	ctx context.Context,
	moderatorID, capabilityID, subOptionID string,
	enabled bool,
) error {
	start := time.Now()
	err := g.next.SetSubOption(ctx, moderatorID, capabilityID, subOptionID, enabled)
	g.record(ctx, "grant_set_sub_option", start, err)
	return err
}

// Replace records metrics for bulk grant replacement.
func (g *grantUseCaseWithMetrics) Replace(
	ctx context.Context,
	moderatorID string,
	grant *permissionDomain.Grant,
) error {
	start := time.Now()
	err := g.next.Replace(ctx, moderatorID, grant)
	g.record(ctx, "grant_replace", start, err)
	return err
}

func (g *grantUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.Status(err)
	g.metrics.RecordOperation(ctx, metrics.DomainPermission, operation, status)
	g.metrics.RecordDuration(ctx, metrics.DomainPermission, operation, time.Since(start), status)
}

// resolverUseCaseWithMetrics decorates ResolverUseCase with metrics instrumentation.
type resolverUseCaseWithMetrics struct {
	next    ResolverUseCase
	metrics metrics.BusinessMetrics
}

// NewResolverUseCaseWithMetrics wraps a ResolverUseCase with metrics recording.
func NewResolverUseCaseWithMetrics(useCase ResolverUseCase, m metrics.BusinessMetrics) ResolverUseCase {
	return &resolverUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Resolve records metrics for permission resolution.
func (r *resolverUseCaseWithMetrics) Resolve(
	ctx context.Context,
	moderatorID string,
) (*permissionDomain.EffectivePermissionSet, error) {
	start := time.Now()
	set, err := r.next.Resolve(ctx, moderatorID)

	status := metrics.Status(err)
	r.metrics.RecordOperation(ctx, metrics.DomainPermission, "resolve", status)
	r.metrics.RecordDuration(ctx, metrics.DomainPermission, "resolve", time.Since(start), status)

	return set, err
}

// HasCapability records the decision outcome. Errors count as denials.
func (r *resolverUseCaseWithMetrics) HasCapability(ctx context.Context, moderatorID, id string) (bool, error) {
	allowed, err := r.next.HasCapability(ctx, moderatorID, id)
	r.metrics.RecordDecision(ctx, id, allowed && err == nil)
	return allowed, err
}

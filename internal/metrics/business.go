package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/allisson/vetdesk/internal/errors"
)

// Values of the "domain" label set by the use case decorators.
const (
	DomainAuth        = "auth"
	DomainPermission  = "permission"
	DomainAssignment  = "assignment"
	DomainSupervision = "supervision"
)

// BusinessMetrics records use case outcomes. Operations are snake_case verbs such as
// "grant_replace" or "request_approve"; status is the value returned by Status.
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	// RecordDuration observes duration in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
	// RecordDecision counts capability checks made by the API gate.
	RecordDecision(ctx context.Context, capability string, allowed bool)
}

type otelBusinessMetrics struct {
	operations metric.Int64Counter
	durations  metric.Float64Histogram
	decisions  metric.Int64Counter
}

// NewBusinessMetrics creates BusinessMetrics on meterProvider. Every instrument name is
// prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)
	m := &otelBusinessMetrics{}
	var err error

	if m.operations, err = meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, apperrors.Wrap(err, "failed to create operation counter")
	}

	if m.durations, err = meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, apperrors.Wrap(err, "failed to create duration histogram")
	}

	if m.decisions, err = meter.Int64Counter(
		namespace+"_authorization_decisions_total",
		metric.WithDescription("Total number of capability checks by outcome"),
		metric.WithUnit("{decision}"),
	); err != nil {
		return nil, apperrors.Wrap(err, "failed to create decision counter")
	}

	return m, nil
}

func operationAttributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (m *otelBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.operations.Add(ctx, 1, operationAttributes(domain, operation, status))
}

func (m *otelBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.durations.Record(ctx, duration.Seconds(), operationAttributes(domain, operation, status))
}

func (m *otelBusinessMetrics) RecordDecision(ctx context.Context, capability string, allowed bool) {
	m.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("capability", capability),
		attribute.String("allowed", strconv.FormatBool(allowed)),
	))
}

// Status returns "error" for a non-nil err and "success" otherwise.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// NoOpBusinessMetrics discards everything. The container uses it when metrics are disabled.
type NoOpBusinessMetrics struct{}

func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (*NoOpBusinessMetrics) RecordOperation(context.Context, string, string, string) {}

func (*NoOpBusinessMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}

func (*NoOpBusinessMetrics) RecordDecision(context.Context, string, bool) {}

// Package usecase publishes events inside the caller's transaction and relays pending
// events to a Notifier.
package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/allisson/vetdesk/internal/database"
	"github.com/allisson/vetdesk/internal/outbox/domain"
)

// Config controls the relay loop.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository stores outbox events.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	// GetPendingEvents locks up to limit pending events, oldest first, skipping rows
	// held by another relay.
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers one event. An error counts as a failed attempt.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase is the relay as seen by the server command.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// Relay moves pending outbox events to an EventProcessor on a fixed interval.
type Relay struct {
	config    Config
	txManager database.TxManager
	repo      OutboxEventRepository
	processor EventProcessor
	logger    *slog.Logger
	now       func() time.Time
}

// NewRelay creates a Relay. A nil logger discards output.
func NewRelay(
	config Config,
	txManager database.TxManager,
	repo OutboxEventRepository,
	processor EventProcessor,
	logger *slog.Logger,
) *Relay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Relay{
		config:    config,
		txManager: txManager,
		repo:      repo,
		processor: processor,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start processes a batch every Interval until ctx is cancelled, then returns ctx.Err().
// A failed batch is logged and retried on the next tick.
func (r *Relay) Start(ctx context.Context) error {
	r.logger.Info("starting outbox relay",
		slog.Duration("interval", r.config.Interval),
		slog.Int("batch_size", r.config.BatchSize),
	)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("stopping outbox relay")
			return ctx.Err()
		case <-ticker.C:
			if err := r.ProcessEvents(ctx); err != nil {
				r.logger.Error("failed to process outbox events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents delivers one batch. Lock, delivery and status updates share a
// transaction so a crash mid-batch leaves the events pending.
func (r *Relay) ProcessEvents(ctx context.Context) error {
	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := r.repo.GetPendingEvents(ctx, r.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) > 0 {
			r.logger.Debug("processing outbox events", slog.Int("count", len(events)))
		}

		for _, event := range events {
			r.deliver(ctx, event)
			if err := r.repo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Relay) deliver(ctx context.Context, event *domain.OutboxEvent) {
	err := r.processor.Process(ctx, event)
	if err == nil {
		event.MarkProcessed(r.now())
		return
	}

	event.MarkAttemptFailed(err, r.config.MaxRetries, r.now())
	r.logger.Error("failed to process outbox event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.Int("retries", event.Retries),
		slog.Bool("gave_up", event.Status == domain.OutboxEventStatusFailed),
		slog.Any("error", err),
	)
}

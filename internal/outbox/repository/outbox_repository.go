// Package repository persists outbox events in PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
	"github.com/allisson/vetdesk/internal/outbox/domain"
)

const outboxColumns = `id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at`

// Queries are written with ? placeholders and rebound per dialect.
const (
	insertEventQuery = `INSERT INTO outbox_events (` + outboxColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	// SKIP LOCKED lets several relays drain the table without handing out an event twice.
	selectPendingQuery = `SELECT ` + outboxColumns + `
		FROM outbox_events
		WHERE status = ?
		ORDER BY created_at ASC
		LIMIT ?
		FOR UPDATE SKIP LOCKED`

	updateEventQuery = `UPDATE outbox_events
		SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = ?
		WHERE id = ?`
)

type dialect struct {
	numbered bool
	// encodeID converts an event ID into the column's driver value.
	encodeID func(id uuid.UUID) (any, error)
}

func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var (
	postgresDialect = dialect{
		numbered: true,
		encodeID: func(id uuid.UUID) (any, error) { return id, nil },
	}
	// MySQL stores IDs as BINARY(16).
	mysqlDialect = dialect{
		encodeID: func(id uuid.UUID) (any, error) { return id.MarshalBinary() },
	}
)

// OutboxEventRepository stores outbox events. Every method joins the transaction carried
// by ctx, if any.
type OutboxEventRepository struct {
	db      *sql.DB
	dialect dialect
}

// NewPostgreSQLOutboxEventRepository creates a repository for PostgreSQL.
func NewPostgreSQLOutboxEventRepository(db *sql.DB) *OutboxEventRepository {
	return &OutboxEventRepository{db: db, dialect: postgresDialect}
}

// NewMySQLOutboxEventRepository creates a repository for MySQL.
func NewMySQLOutboxEventRepository(db *sql.DB) *OutboxEventRepository {
	return &OutboxEventRepository{db: db, dialect: mysqlDialect}
}

// Create inserts event so it commits together with the change it describes.
func (r *OutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	id, err := r.dialect.encodeID(event.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal outbox event id")
	}

	_, err = database.GetTx(ctx, r.db).ExecContext(ctx, r.dialect.rebind(insertEventQuery),
		id, event.EventType, event.Payload, event.Status,
		event.Retries, event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}

// GetPendingEvents locks up to limit pending events, oldest first.
func (r *OutboxEventRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx, r.dialect.rebind(selectPendingQuery),
		domain.OutboxEventStatusPending, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.OutboxEvent, 0)
	for rows.Next() {
		var e domain.OutboxEvent
		// uuid.UUID scans both native UUID columns and BINARY(16).
		if err := rows.Scan(&e.ID, &e.EventType, &e.Payload, &e.Status,
			&e.Retries, &e.LastError, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan outbox event")
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate outbox events")
	}
	return events, nil
}

// Update writes the delivery state of event.
func (r *OutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	id, err := r.dialect.encodeID(event.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal outbox event id")
	}

	_, err = database.GetTx(ctx, r.db).ExecContext(ctx, r.dialect.rebind(updateEventQuery),
		event.Status, event.Retries, event.LastError, event.ProcessedAt, event.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update outbox event")
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	"github.com/allisson/vetdesk/internal/database"
	apperrors "github.com/allisson/vetdesk/internal/errors"
)

const auditLogColumns = "id, request_id, moderator_id, capability, path, metadata, signature, created_at"

// AuditLogRepository stores signed audit records. uuid.UUID scans both the textual
// PostgreSQL form and the BINARY(16) MySQL form, so reads share one code path.
type AuditLogRepository struct {
	db      *sql.DB
	dialect sqlDialect
}

// NewPostgreSQLAuditLogRepository creates an AuditLogRepository for PostgreSQL.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db, dialect: postgresDialect}
}

// NewMySQLAuditLogRepository creates an AuditLogRepository for MySQL.
func NewMySQLAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db, dialect: mysqlDialect}
}

// Create inserts a new AuditLog. Nil metadata and missing signatures are stored as NULL.
func (r *AuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	ids, err := r.dialect.uuidValues(auditLog.ID, auditLog.RequestID, auditLog.ModeratorID)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode audit log id")
	}

	metadata, err := marshalMetadata(auditLog.Metadata)
	if err != nil {
		return err
	}

	query := "INSERT INTO audit_logs (" + auditLogColumns + ") VALUES (" + r.dialect.params(1, 8) + ")"
	args := append(ids,
		auditLog.Capability,
		auditLog.Path,
		metadata,
		nullableBytes(auditLog.Signature),
		auditLog.CreatedAt,
	)

	if _, err := database.GetTx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}
	return nil
}

// List retrieves audit logs newest first with optional inclusive time filters.
func (r *AuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditLog, error) {
	var (
		where []string
		args  []any
	)
	addFilter := func(op string, at *time.Time) {
		if at == nil {
			return
		}
		args = append(args, *at)
		where = append(where, "created_at "+op+" "+r.dialect.placeholder(len(args)))
	}
	addFilter(">=", createdAtFrom)
	addFilter("<=", createdAtTo)

	var query strings.Builder
	query.WriteString("SELECT " + auditLogColumns + " FROM audit_logs")
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, id DESC LIMIT " + r.dialect.placeholder(len(args)+1) +
		" OFFSET " + r.dialect.placeholder(len(args)+2))
	args = append(args, limit, offset)

	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	auditLogs := make([]*authDomain.AuditLog, 0)
	for rows.Next() {
		auditLog, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		auditLogs = append(auditLogs, auditLog)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}
	return auditLogs, nil
}

// DeleteOlderThan deletes audit logs created before the given instant. When dryRun is
// true it only counts them.
func (r *AuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, r.db)
	cond := " FROM audit_logs WHERE created_at < " + r.dialect.placeholder(1)

	if dryRun {
		var count int64
		if err := querier.QueryRowContext(ctx, "SELECT COUNT(*)"+cond, before).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit logs")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, "DELETE"+cond, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

func scanAuditLog(rows *sql.Rows) (*authDomain.AuditLog, error) {
	var (
		auditLog authDomain.AuditLog
		metadata []byte
	)
	err := rows.Scan(
		&auditLog.ID,
		&auditLog.RequestID,
		&auditLog.ModeratorID,
		&auditLog.Capability,
		&auditLog.Path,
		&metadata,
		&auditLog.Signature,
		&auditLog.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan audit log")
	}
	if metadata != nil {
		if err := json.Unmarshal(metadata, &auditLog.Metadata); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit log metadata")
		}
	}
	return &auditLog, nil
}

// marshalMetadata returns an untyped nil for nil metadata so drivers store NULL.
func marshalMetadata(metadata map[string]any) (any, error) {
	if metadata == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal audit log metadata")
	}
	return encoded, nil
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
)

type retentionResult struct {
	Count  int64 `json:"count"`
	Days   int   `json:"days"`
	DryRun bool  `json:"dry_run"`
}

// retentionJob describes one cleanup: what it deletes and how.
type retentionJob struct {
	noun   string
	errMsg string
	purge  func(ctx context.Context, days int, dryRun bool) (int64, error)
}

func (j retentionJob) run(
	ctx context.Context,
	logger *slog.Logger,
	w io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning "+j.noun, slog.Int("days", days), slog.Bool("dry_run", dryRun))

	count, err := j.purge(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("%s: %w", j.errMsg, err)
	}

	switch {
	case format == FormatJSON:
		if err := writeJSON(w, retentionResult{Count: count, Days: days, DryRun: dryRun}); err != nil {
			return err
		}
	case dryRun:
		_, _ = fmt.Fprintf(w, "Dry-run mode: Would delete %d %s older than %d day(s)\n", count, j.noun, days)
	default:
		_, _ = fmt.Fprintf(w, "Successfully deleted %d %s older than %d day(s)\n", count, j.noun, days)
	}

	logger.Info("cleanup completed",
		slog.String("target", j.noun),
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)
	return nil
}

// RunCleanAuditLogs deletes audit logs older than days. With dryRun only the count is
// reported.
func RunCleanAuditLogs(
	ctx context.Context,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	job := retentionJob{
		noun:   "audit log(s)",
		errMsg: "failed to delete audit logs",
		purge:  auditLogUseCase.DeleteOlderThan,
	}
	return job.run(ctx, logger, writer, days, dryRun, format)
}

// RunCleanExpiredTokens deletes moderator tokens that expired more than days ago.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	job := retentionJob{
		noun:   "expired token(s)",
		errMsg: "failed to cleanup expired tokens",
		purge: func(ctx context.Context, days int, dryRun bool) (int64, error) {
			return tokenUseCase.PurgeExpired(ctx, time.Duration(days)*24*time.Hour, dryRun)
		},
	}
	return job.run(ctx, logger, writer, days, dryRun, format)
}

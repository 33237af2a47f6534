package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authMocks "github.com/allisson/vetdesk/internal/auth/usecase/mocks"
)

func TestRunVerifyAuditLogs(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

	t.Run("passed text report", func(t *testing.T) {
		uc := authMocks.NewMockAuditLogUseCase(t)
		uc.On("VerifyBatch", ctx, start, end).
			Return(&authDomain.VerificationReport{TotalChecked: 12, SignedCount: 10, UnsignedCount: 2, ValidCount: 10}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditLogs(ctx, uc, logger, &out, "2026-03-01", "2026-03-02 12:30:00", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Time Range: 2026-03-01 00:00:00 to 2026-03-02 12:30:00")
		assert.Contains(t, out.String(), "Unsigned:       2")
		assert.Contains(t, out.String(), "Status: PASSED")
	})

	t.Run("empty range", func(t *testing.T) {
		uc := authMocks.NewMockAuditLogUseCase(t)
		uc.On("VerifyBatch", ctx, start, end).Return(&authDomain.VerificationReport{}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditLogs(ctx, uc, logger, &out, "2026-03-01", "2026-03-02 12:30:00", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Status: no logs in range")
	})

	t.Run("json report", func(t *testing.T) {
		uc := authMocks.NewMockAuditLogUseCase(t)
		uc.On("VerifyBatch", ctx, start, end).
			Return(&authDomain.VerificationReport{TotalChecked: 3, SignedCount: 3, ValidCount: 3}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditLogs(ctx, uc, logger, &out, "2026-03-01", "2026-03-02 12:30:00", "json")
		require.NoError(t, err)

		var got verifyOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, int64(3), got.ValidCount)
		assert.True(t, got.Passed)
		assert.Empty(t, got.InvalidLogs)
		assert.Contains(t, out.String(), `"invalid_logs": []`)
	})

	t.Run("tampered logs fail after reporting", func(t *testing.T) {
		tampered := uuid.Must(uuid.NewV7())
		uc := authMocks.NewMockAuditLogUseCase(t)
		uc.On("VerifyBatch", ctx, start, end).Return(&authDomain.VerificationReport{
			TotalChecked: 4,
			SignedCount:  4,
			ValidCount:   3,
			InvalidCount: 1,
			InvalidLogs:  []uuid.UUID{tampered},
		}, nil)

		var out bytes.Buffer
		err := RunVerifyAuditLogs(ctx, uc, logger, &out, "2026-03-01", "2026-03-02 12:30:00", "text")

		require.EqualError(t, err, "integrity check failed: 1 invalid signature(s)")
		assert.Contains(t, out.String(), "WARNING: 1 log(s) failed integrity check!")
		assert.Contains(t, out.String(), tampered.String())
		assert.Contains(t, out.String(), "Status: FAILED")
	})

	t.Run("use case error", func(t *testing.T) {
		uc := authMocks.NewMockAuditLogUseCase(t)
		uc.On("VerifyBatch", ctx, start, end).Return(nil, errors.New("connection reset"))

		err := RunVerifyAuditLogs(ctx, uc, logger, io.Discard, "2026-03-01", "2026-03-02 12:30:00", "text")

		require.ErrorContains(t, err, "failed to verify audit logs: connection reset")
	})

	argumentErrors := []struct {
		name, start, end, want string
	}{
		{"bad start", "03/01/2026", "2026-03-02", "invalid start date"},
		{"bad end", "2026-03-01", "tomorrow", "invalid end date"},
		{"reversed", "2026-03-02", "2026-03-01", "end date must be after start date"},
		{"equal", "2026-03-01", "2026-03-01 00:00:00", "end date must be after start date"},
	}
	for _, tt := range argumentErrors {
		t.Run(tt.name, func(t *testing.T) {
			err := RunVerifyAuditLogs(ctx, nil, logger, io.Discard, tt.start, tt.end, "text")

			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-01 08:15:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC), got)

	got, err = parseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("2026-13-01")
	assert.Error(t, err)
}

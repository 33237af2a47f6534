package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	permissionUseCase "github.com/allisson/vetdesk/internal/permission/usecase"
)

// RunSetCapability records a single grant key for a moderator. With subOption empty the
// category boolean is written, otherwise the sub-option of capability.
func RunSetCapability(
	ctx context.Context,
	grantUseCase permissionUseCase.GrantUseCase,
	logger *slog.Logger,
	writer io.Writer,
	moderatorID, capability, subOption string,
	enabled bool,
	format string,
) error {
	if _, err := uuid.Parse(moderatorID); err != nil {
		return fmt.Errorf("invalid moderator id: %w", err)
	}
	if capability == "" {
		return fmt.Errorf("capability must not be blank")
	}

	key := capability
	var err error
	if subOption == "" {
		err = grantUseCase.SetCapability(ctx, moderatorID, capability, enabled)
	} else {
		key = subOption
		err = grantUseCase.SetSubOption(ctx, moderatorID, capability, subOption, enabled)
	}
	if err != nil {
		return fmt.Errorf("failed to update grant: %w", err)
	}

	logger.Info("grant updated",
		slog.String("moderator_id", moderatorID),
		slog.String("key", key),
		slog.Bool("enabled", enabled),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"moderator_id": moderatorID,
			"key":          key,
			"enabled":      enabled,
		})
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	_, _ = fmt.Fprintf(writer, "%s %s for moderator %s\n", key, state, moderatorID)
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/vetdesk/internal/auth/domain"
	authUseCase "github.com/allisson/vetdesk/internal/auth/usecase"
)

// RunCreateModerator creates a moderator account and prints its credentials. The secret
// is shown once and cannot be recovered afterwards.
func RunCreateModerator(
	ctx context.Context,
	moderatorUseCase authUseCase.ModeratorUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	isRoot bool,
	format string,
) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name must not be blank")
	}

	logger.Info("creating moderator",
		slog.String("name", name),
		slog.Bool("is_root", isRoot),
	)

	output, err := moderatorUseCase.Create(ctx, &authDomain.CreateModeratorInput{
		Name:   name,
		IsRoot: isRoot,
	})
	if err != nil {
		return fmt.Errorf("failed to create moderator: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, map[string]any{
			"moderator_id": output.ID.String(),
			"secret":       output.PlainSecret,
			"is_root":      isRoot,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Moderator ID: %s\n", output.ID)
		_, _ = fmt.Fprintf(writer, "Secret:       %s\n", output.PlainSecret)
		_, _ = fmt.Fprintf(writer, "\nStore the secret now, it will not be shown again.\n")
	}

	logger.Info("moderator created", slog.String("moderator_id", output.ID.String()))
	return nil
}

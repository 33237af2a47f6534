package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vetdesk/internal/app"
	"github.com/allisson/vetdesk/internal/config"
)

func getCommands(version string) []*cli.Command {
	var cmds []*cli.Command
	for _, group := range [][]*cli.Command{
		getSystemCommands(version),
		getAuthCommands(),
		getDeskCommands(),
	} {
		cmds = append(cmds, group...)
	}
	return cmds
}

// withContainer runs fn against a container built from the environment and shuts it down
// afterwards.
func withContainer(ctx context.Context, fn func(*app.Container) error) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()
	return fn(container)
}

// output is where a command prints its result.
func output(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// retentionFlags are shared by the cleanup commands. noun names what gets deleted.
func retentionFlags(noun string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "days",
			Aliases:  []string{"d"},
			Required: true,
			Usage:    "Delete " + noun + " older than this many days",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Show how many " + noun + " would be deleted without deleting",
		},
		formatFlag(),
	}
}

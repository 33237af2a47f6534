package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vetdesk/cmd/app/commands"
	"github.com/allisson/vetdesk/internal/app"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the API server, the metrics server and the outbox relay",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					cfg := c.Config()
					return commands.RunMigrations(c.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				})
			},
		},
		{
			Name:  "clean-audit-logs",
			Usage: "Delete audit logs older than the retention window",
			Flags: retentionFlags("audit logs"),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					auditLogs, err := c.AuditLogUseCase()
					if err != nil {
						return err
					}
					return commands.RunCleanAuditLogs(ctx, auditLogs, c.Logger(), output(cmd),
						int(cmd.Int("days")), cmd.Bool("dry-run"), cmd.String("format"))
				})
			},
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Check the signatures of audit logs in a time range",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "start-date",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Start date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				&cli.StringFlag{
					Name:     "end-date",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "End date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					auditLogs, err := c.AuditLogUseCase()
					if err != nil {
						return err
					}
					return commands.RunVerifyAuditLogs(ctx, auditLogs, c.Logger(), output(cmd),
						cmd.String("start-date"), cmd.String("end-date"), cmd.String("format"))
				})
			},
		},
		{
			Name:  "catalog",
			Usage: "Print the capability catalog",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					return commands.RunCatalog(c.Catalog(), output(cmd), cmd.String("format"))
				})
			},
		},
	}
}

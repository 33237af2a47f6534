package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vetdesk/cmd/app/commands"
	"github.com/allisson/vetdesk/internal/app"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-moderator",
			Usage: "Create a moderator account and print its secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable moderator name",
				},
				&cli.BoolFlag{
					Name:  "root",
					Usage: "Create a root moderator that bypasses capability checks",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					moderators, err := c.ModeratorUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateModerator(ctx, moderators, c.Logger(), output(cmd),
						cmd.String("name"), cmd.Bool("root"), cmd.String("format"))
				})
			},
		},
		{
			Name:  "set-capability",
			Usage: "Enable or disable a capability or sub-option for a moderator",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "moderator-id",
					Aliases:  []string{"m"},
					Required: true,
					Usage:    "Moderator ID (UUID)",
				},
				&cli.StringFlag{
					Name:     "capability",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Catalog category ID",
				},
				&cli.StringFlag{
					Name:    "sub-option",
					Aliases: []string{"s"},
					Usage:   "Sub-option ID under the category (omit to set the category itself)",
				},
				&cli.BoolFlag{
					Name:  "enabled",
					Value: true,
					Usage: "Grant (true) or revoke (false) the key",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					grants, err := c.GrantUseCase()
					if err != nil {
						return err
					}
					return commands.RunSetCapability(ctx, grants, c.Logger(), output(cmd),
						cmd.String("moderator-id"), cmd.String("capability"), cmd.String("sub-option"),
						cmd.Bool("enabled"), cmd.String("format"))
				})
			},
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete tokens that expired before the retention window",
			Flags: retentionFlags("expired tokens"),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					tokens, err := c.TokenUseCase()
					if err != nil {
						return err
					}
					return commands.RunCleanExpiredTokens(ctx, tokens, c.Logger(), output(cmd),
						int(cmd.Int("days")), cmd.Bool("dry-run"), cmd.String("format"))
				})
			},
		},
	}
}

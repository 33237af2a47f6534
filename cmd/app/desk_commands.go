package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/vetdesk/cmd/app/commands"
	"github.com/allisson/vetdesk/internal/app"
)

func getDeskCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add-candidate",
			Usage: "Create or update a vet or supervisor in the candidate pool",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Candidate ID"},
				&cli.StringFlag{
					Name:     "role",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Candidate role: 'vet' or 'supervisor'",
				},
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Display name"},
				&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Required: true, Usage: "Contact phone"},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the candidate can be picked by the matcher",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(c *app.Container) error {
					candidates, err := c.CandidateUseCase()
					if err != nil {
						return err
					}
					return commands.RunAddCandidate(ctx, candidates, c.Logger(), output(cmd),
						cmd.String("id"), cmd.String("role"), cmd.String("name"), cmd.String("phone"),
						cmd.Bool("active"), cmd.String("format"))
				})
			},
		},
	}
}

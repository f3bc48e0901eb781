// Command analyze is a developer tool for Klondike configurations and deals.
//
//	analyze validate            check every config in the config directory
//	analyze simulate -games 200 autoplay seeded deals and report win rates
//	analyze schema              print the JSON Schema of a game config
//	analyze deal -seed 7        print the opening board of a seeded deal
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree writing reports to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "inspect Klondike configurations and deals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "validate every configuration file, listing all problems",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runValidate(out, cmd.String("dir"))
				},
			},
			{
				Name:  "simulate",
				Usage: "play seeded deals with a greedy autoplayer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "classic", Usage: "configuration to deal with"},
					&cli.IntFlag{Name: "games", Value: 100, Usage: "number of deals"},
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "seed of the first deal; deal i uses seed+i"},
					&cli.IntFlag{Name: "max-steps", Value: 2000, Usage: "step limit per game"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "games played concurrently"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts := simulateOptions{
						Games:    int(cmd.Int("games")),
						Seed:     int64(cmd.Int("seed")),
						MaxSteps: int(cmd.Int("max-steps")),
						Workers:  int(cmd.Int("workers")),
					}
					cfg, err := loadConfig(cmd.String("dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					report, err := simulate(ctx, cfg, opts)
					if err != nil {
						return err
					}
					report.Print(out)
					return nil
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON Schema of a game configuration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return writeSchema(out)
				},
			},
			{
				Name:  "deal",
				Usage: "print the opening board of a seeded deal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "classic", Usage: "configuration to deal with"},
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "shuffle seed"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd.String("dir"), cmd.String("config"))
					if err != nil {
						return err
					}
					return printDeal(out, cfg, int64(cmd.Int("seed")))
				},
			},
		},
	}
}

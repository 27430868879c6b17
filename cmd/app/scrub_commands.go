package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/piiguard/cmd/app/commands"
	"github.com/allisson/piiguard/internal/app"
	"github.com/allisson/piiguard/internal/config"
)

func getScrubCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "scrub",
			Usage: "Read text from stdin and write it with PII masked",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "context",
					Aliases: []string{"c"},
					Value:   "",
					Usage:   "Detection context (financial, healthcare, legal, government, general)",
				},
				&cli.StringFlag{
					Name:    "strategy",
					Aliases: []string{"s"},
					Value:   "",
					Usage:   "Masking strategy (full_mask, partial_mask, tokenize, hash, placeholder, remove)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "json",
					Usage:   "Output format: 'json' or 'text'",
				},
				&cli.StringFlag{
					Name:  "detail",
					Value: "summary",
					Usage: "Detection detail: 'summary' or 'full' (full includes raw values)",
				},
				&cli.BoolFlag{
					Name:    "record",
					Aliases: []string{"r"},
					Usage:   "Treat stdin as a JSON object and scrub every string field",
				},
				&cli.BoolFlag{
					Name:    "lines",
					Aliases: []string{"l"},
					Usage:   "Scrub every stdin line as a separate request",
				},
				&cli.BoolFlag{
					Name:  "metrics",
					Usage: "Write collected metrics to stderr after scrubbing",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				coordinator, err := container.Coordinator()
				if err != nil {
					return err
				}

				err = commands.RunScrub(
					ctx,
					coordinator,
					container.StrategyDefaults(),
					container.Logger(),
					commands.DefaultIO(),
					commands.ScrubOptions{
						Context:     cmd.String("context"),
						Strategy:    cmd.String("strategy"),
						Format:      cmd.String("format"),
						Detail:      cmd.String("detail"),
						Record:      cmd.Bool("record"),
						Lines:       cmd.Bool("lines"),
						Concurrency: cfg.ScrubBatchConcurrency,
					},
				)
				if err != nil {
					return err
				}

				if cmd.Bool("metrics") {
					provider, err := container.MetricsProvider()
					if err != nil {
						return err
					}
					if provider != nil {
						return provider.WriteText(os.Stderr)
					}
				}
				return nil
			},
		},
		{
			Name:  "patterns",
			Usage: "List the detection patterns enabled for a context",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "context",
					Aliases: []string{"c"},
					Value:   "general",
					Usage:   "Detection context (financial, healthcare, legal, government, general)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunListPatterns(
					container.Catalog(),
					commands.DefaultIO().Writer,
					cmd.String("context"),
					cmd.String("format"),
				)
			},
		},
	}
}

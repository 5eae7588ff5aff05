package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/pageza/recipe-suggestions/backend/internal/logging"
	"github.com/pageza/recipe-suggestions/backend/internal/suggest"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Ask the recipe suggestion service what to cook with the ingredients you have",
		Description: `Sends the given ingredients to the suggestion service and prints the recipes it
returns, marking the ingredients you are missing.

Examples:
  suggest -i eggs -i milk -i flour
  suggest --format html -i eggs > suggestions.html
  suggest --interactive`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "suggestion service URL",
				Value:   suggest.DefaultEndpoint,
				Sources: cli.EnvVars("SUGGEST_URL"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "per request timeout (0 waits forever)",
				Value:   suggest.DefaultTimeout,
				Sources: cli.EnvVars("SUGGEST_TIMEOUT"),
			},
			&cli.StringSliceFlag{
				Name:    "ingredient",
				Aliases: []string{"i"},
				Usage:   "an ingredient you have; repeat for more",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: text or html",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:  "interactive",
				Usage: "edit the ingredient list in a prompt",
			},
			&cli.BoolFlag{
				Name:  "clear-on-failure",
				Usage: "drop earlier results when a request fails",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	render, err := renderer(cmd.String("format"))
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:       cmd.String("log-level"),
		Format:      "console",
		Development: true,
		Output:      os.Stderr,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := []suggest.Option{
		suggest.WithTimeout(cmd.Duration("timeout")),
		suggest.WithLogger(logger),
	}
	if cmd.Bool("clear-on-failure") {
		opts = append(opts, suggest.WithClearOnFailure())
	}
	client := suggest.NewClient(cmd.String("endpoint"), opts...)

	if cmd.Bool("interactive") {
		shell := suggest.NewShell(client, os.Stdin, os.Stdout, render)
		for _, ing := range cmd.StringSlice("ingredient") {
			d := shell.Draft()
			if d.Len() == 1 && d.Row(0) == "" {
				d.UpdateRow(0, ing)
				continue
			}
			d.AddRow()
			d.UpdateRow(d.Len()-1, ing)
		}
		return shell.Run(ctx)
	}

	draft := suggest.DraftOf(cmd.StringSlice("ingredient")...)
	_, submitErr := client.Submit(ctx, draft)
	if err := render(os.Stdout, suggest.ViewOf(client.Snapshot())); err != nil {
		return err
	}
	if submitErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func renderer(format string) (suggest.RenderFunc, error) {
	switch format {
	case "text", "":
		return suggest.RenderText, nil
	case "html":
		return suggest.RenderHTML, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text or html)", format)
	}
}

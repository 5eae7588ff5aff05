package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/pageza/recipe-suggestions/backend/internal/database"
	"github.com/pageza/recipe-suggestions/backend/internal/logging"
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
		Name:  "migrate",
		Usage: "Manage the recipe database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "database connection string",
				Sources:  cli.EnvVars("DATABASE_URL", "MONGODB_URI"),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "create or update the schema",
				Action: withDB(func(ctx context.Context, _ *cli.Command, db *database.DB, logger *zap.Logger) error {
					return database.Migrate(db, logger)
				}),
			},
			{
				Name:  "seed",
				Usage: "create demo users and saved recipes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "password",
						Usage: "password given to every demo user",
						Value: "testpassword123",
					},
				},
				Action: withDB(func(ctx context.Context, cmd *cli.Command, db *database.DB, logger *zap.Logger) error {
					if err := database.Migrate(db, logger); err != nil {
						return err
					}
					return seed(ctx, db, cmd.String("password"), logger)
				}),
			},
		},
	}
}

type dbAction func(ctx context.Context, cmd *cli.Command, db *database.DB, logger *zap.Logger) error

func withDB(action dbAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		logger, err := logging.New(logging.Options{Level: cmd.String("log-level"), Format: "console"})
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db, err := database.Open(ctx, cmd.String("database-url"), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		return action(ctx, cmd, db, logger)
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Nickbot606/clenv/cmd/app/commands"
	"github.com/Nickbot606/clenv/internal/app"
	"github.com/Nickbot606/clenv/internal/config"
	"github.com/Nickbot606/clenv/internal/database"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database migrations (PostgreSQL and MySQL; SQLite vaults migrate on first use)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					return commands.RunMigrations(container.Logger(), cfg.DatabaseConfig())
				})
			},
		},
		{
			Name:  "version",
			Usage: "Print the clenv version",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				_, err := fmt.Fprintln(commands.DefaultIO().Writer, version)
				return err
			},
		},
	}
}

// databaseLabel describes the selected vault without printing server credentials.
func databaseLabel(cfg *config.Config) string {
	if cfg.DBDriver == database.DriverSQLite {
		return fmt.Sprintf("%s %s", cfg.DBDriver, cfg.DBConnectionString)
	}
	return cfg.DBDriver
}

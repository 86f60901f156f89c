package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Nickbot606/clenv/internal/app"
	"github.com/Nickbot606/clenv/internal/config"
)

func getGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Usage:   "Namespace to operate on (default: CLENV_NAMESPACE or \"default\")",
		},
		&cli.StringFlag{
			Name:    "identity",
			Aliases: []string{"u"},
			Usage:   "Principal to act as (default: CLENV_IDENTITY or the OS user name)",
		},
	}
}

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getEntryCommands()...)
	return cmds
}

// loadConfig loads the environment configuration and applies the global flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Load()
	if cmd.IsSet("namespace") {
		cfg.Namespace = cmd.String("namespace")
	}
	if cmd.IsSet("identity") {
		cfg.Identity = cmd.String("identity")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withContainer runs fn with a container built from the command's configuration and shuts the
// container down afterwards, which also flushes metrics.
func withContainer(
	ctx context.Context,
	cmd *cli.Command,
	fn func(cfg *config.Config, container *app.Container) error,
) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	runErr := fn(cfg, container)

	if err := container.Shutdown(ctx); err != nil {
		container.Logger().Error("failed to shutdown container", "error", err)
	}
	return runErr
}

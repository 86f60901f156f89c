package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Nickbot606/clenv/cmd/app/commands"
	"github.com/Nickbot606/clenv/internal/app"
	"github.com/Nickbot606/clenv/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Create your key pair and, on an empty vault, register yourself",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunInit(
						ctx,
						container.KeyPairProvider(),
						manager,
						container.Logger(),
						commands.DefaultIO().Writer,
						cfg.Namespace,
						cfg.Identity,
					)
				})
			},
		},
		{
			Name:      "add",
			Usage:     "Register a principal's public key and grant it access to the namespace",
			ArgsUsage: "<name> <public-key-file>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 2 {
					return fmt.Errorf("add expects <name> <public-key-file>")
				}
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunAddPrincipal(
						ctx,
						container.KeyPairProvider(),
						manager,
						commands.DefaultIO().Writer,
						cfg.Namespace,
						cfg.Identity,
						cmd.Args().Get(0),
						cmd.Args().Get(1),
					)
				})
			},
		},
		{
			Name:      "revoke",
			Usage:     "Remove a principal from the keyring and from every entry of the namespace",
			ArgsUsage: "<name>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return fmt.Errorf("revoke expects <name>")
				}
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunRevoke(
						ctx,
						manager,
						commands.DefaultIO().Writer,
						cfg.Namespace,
						cmd.Args().Get(0),
					)
				})
			},
		},
		{
			Name:      "export-key",
			Usage:     "Print or write your PEM public key",
			ArgsUsage: "[output]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					return commands.RunExportKey(
						ctx,
						container.KeyPairProvider(),
						commands.DefaultIO().Writer,
						cfg.Identity,
						cmd.Args().Get(0),
					)
				})
			},
		},
	}
}

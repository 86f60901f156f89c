package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Nickbot606/clenv/cmd/app/commands"
	"github.com/Nickbot606/clenv/internal/app"
	"github.com/Nickbot606/clenv/internal/config"
)

func getEntryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "store",
			Usage:     "Encrypt a file for every principal in the keyring",
			ArgsUsage: "<file> [name]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() < 1 || cmd.Args().Len() > 2 {
					return fmt.Errorf("store expects <file> [name]")
				}
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunStore(
						ctx,
						manager,
						commands.DefaultIO().Writer,
						cfg.Namespace,
						cmd.Args().Get(0),
						cmd.Args().Get(1),
					)
				})
			},
		},
		{
			Name:      "get",
			Usage:     "Decrypt an entry to stdout or to a file",
			ArgsUsage: "<name> [output]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() < 1 || cmd.Args().Len() > 2 {
					return fmt.Errorf("get expects <name> [output]")
				}
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunGet(
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
			Name:  "dump",
			Usage: "Decrypt every entry of the namespace into files",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Value:   ".",
					Usage:   "Directory the files are written to",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunDump(
						ctx,
						container.KeyPairProvider(),
						manager,
						container.Logger(),
						commands.DefaultIO().Writer,
						cfg.Namespace,
						cfg.Identity,
						cmd.String("dir"),
					)
				})
			},
		},
		{
			Name:      "show",
			Usage:     "Show the vault, its principals, namespaces and the entries of a namespace",
			ArgsUsage: "[namespace]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}

					namespace := cfg.Namespace
					if cmd.Args().Present() {
						namespace = cmd.Args().First()
					}

					return commands.RunShow(ctx, manager, commands.DefaultIO().Writer, commands.ShowInput{
						Database:  databaseLabel(cfg),
						Identity:  cfg.Identity,
						Namespace: namespace,
					})
				})
			},
		},
		{
			Name:      "rm",
			Usage:     "Delete an entry",
			ArgsUsage: "<name>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Args().Len() != 1 {
					return fmt.Errorf("rm expects <name>")
				}
				return withContainer(ctx, cmd, func(cfg *config.Config, container *app.Container) error {
					manager, err := container.AccessManager()
					if err != nil {
						return err
					}
					return commands.RunRemove(ctx, manager, commands.DefaultIO().Writer, cfg.Namespace, cmd.Args().Get(0))
				})
			},
		},
	}
}

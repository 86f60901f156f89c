// Package main provides the clenv command-line entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "clenv",
		Usage:    "Share encrypted environment files between the members of a team",
		Version:  version,
		Flags:    getGlobalFlags(),
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "clenv: %v\n", err)
		os.Exit(1)
	}
}

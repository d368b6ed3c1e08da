// Command graphcat resolves, checks and introspects graph source catalogs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "graphcat",
		Usage: "Resolve node labels and relationship types to table sources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to .graphcat.yaml (default: search upwards from the working directory)",
				Sources: cli.EnvVars("GRAPHCAT_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "sources",
				Usage: "source file to load (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			resolveCommand(),
			checkCommand(),
			introspectCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

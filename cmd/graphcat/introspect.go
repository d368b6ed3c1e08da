package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/graphcat"
	_ "github.com/rlch/graphcat/databases/neo4j"
)

// ErrNoConnectionURI is returned when introspect has no database to connect to.
var ErrNoConnectionURI = errors.New("no connection URI specified (use --uri or neo4j.uri in .graphcat.yaml)")

func introspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "introspect",
		Usage: "Write a source file describing a live Neo4j database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "uri",
				Usage:   "database connection URI",
				Sources: cli.EnvVars("GRAPHCAT_URI"),
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "database username",
				Sources: cli.EnvVars("GRAPHCAT_USER"),
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "database password",
				Sources: cli.EnvVars("GRAPHCAT_PASS"),
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "database name (default: server default)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "introspection timeout (default 30s)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write to file instead of stdout",
			},
		},
		Action: runIntrospect,
	}
}

func runIntrospect(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	neo4jCfg := neo4jConfig(s.cfg, cmd)
	if neo4jCfg.URI == "" {
		return ErrNoConnectionURI
	}

	s.logger.Debug("Connecting", zap.String("uri", neo4jCfg.URI), zap.String("database", neo4jCfg.Database))

	introspector, err := graphcat.NewIntrospector(graphcat.DatabaseNeo4j, neo4jCfg)
	if err != nil {
		return err
	}
	defer func() { _ = introspector.Close() }()

	cat, err := introspector.IntrospectCatalog(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("Introspected database",
		zap.Int("labels", len(cat.NodeLabels())),
		zap.Int("relationship_types", len(cat.RelationshipTypes())),
	)

	return writeSources(cmd.String("output"), os.Stdout, cat)
}

// writeSources writes cat to path, or to stdout when path is empty.
// A failed close is returned as an error.
func writeSources(path string, stdout io.Writer, cat *graphcat.InMemoryCatalog) (err error) {
	if path == "" {
		return graphcat.WriteSources(stdout, cat)
	}

	f, err := os.Create(path) //nolint:gosec // G304: output path from user input is expected
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return graphcat.WriteSources(f, cat)
}

// neo4jConfig merges connection flags over the config file's neo4j section.
func neo4jConfig(cfg *graphcat.Config, cmd *cli.Command) *graphcat.Neo4jConfig {
	neo4jCfg := &graphcat.Neo4jConfig{}
	if cfg.Neo4j != nil {
		*neo4jCfg = *cfg.Neo4j
	}

	if uri := cmd.String("uri"); uri != "" {
		neo4jCfg.URI = uri
	}

	if username := cmd.String("username"); username != "" {
		neo4jCfg.Username = username
	}

	if password := cmd.String("password"); password != "" {
		neo4jCfg.Password = password
	}

	if database := cmd.String("database"); database != "" {
		neo4jCfg.Database = database
	}

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		neo4jCfg.Timeout = timeout
	}

	return neo4jCfg
}

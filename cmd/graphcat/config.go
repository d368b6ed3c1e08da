package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/graphcat"
)

// ErrNoSources is returned when neither --sources nor the config names a source file.
var ErrNoSources = errors.New("no source file specified (use --sources or sources in .graphcat.yaml)")

// session is the state shared by every subcommand.
type session struct {
	cfg    *graphcat.Config
	dir    string
	logger *zap.Logger
}

// newSession loads the config and builds the logger. A missing config is
// not an error; cfg is then empty and dir is the working directory.
func newSession(cmd *cli.Command) (*session, error) {
	cfg, dir, err := loadConfigWithDir(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log.Level, cmd.Bool("debug"))
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, dir: dir, logger: logger}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// loadSources loads the catalog named by --sources or the config.
func (s *session) loadSources(cmd *cli.Command) (*graphcat.InMemoryCatalog, error) {
	path := cmd.String("sources")
	if path == "" {
		path = s.cfg.SourcesPath(s.dir)
	}

	if path == "" {
		return nil, ErrNoSources
	}

	cat, err := graphcat.LoadSourceFile(path, s.dir)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Loaded sources",
		zap.String("path", path),
		zap.Int("labels", len(cat.NodeLabels())),
		zap.Int("relationship_types", len(cat.RelationshipTypes())),
	)

	return cat, nil
}

// loadConfigWithDir loads config and returns both the config and the
// directory it was found in. An explicit path must exist; otherwise the
// search walks up from the working directory.
func loadConfigWithDir(path string) (*graphcat.Config, string, error) {
	if path != "" {
		cfg, err := graphcat.LoadConfigFile(path)
		if err != nil {
			return nil, "", err
		}

		return cfg, filepath.Dir(path), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}

	cfg, dir, err := graphcat.LoadConfig(wd)
	if errors.Is(err, graphcat.ErrConfigNotFound) {
		return &graphcat.Config{}, wd, nil
	}

	if err != nil {
		return nil, "", err
	}

	return cfg, dir, nil
}

// newLogger logs to stderr so stdout stays clean for command output.
func newLogger(level string, debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}

		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}

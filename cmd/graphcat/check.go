package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/graphcat"
	"github.com/rlch/graphcat/analysis"
)

// ErrDiagnosticErrors is returned when check finds error diagnostics.
var ErrDiagnosticErrors = errors.New("mappings contain errors")

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Check configured mappings against the source catalog",
		Action: runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	mem, err := s.loadSources(cmd)
	if err != nil {
		return err
	}

	diags := checkSources(s.cfg, mem, s.logger)

	out := newPrinter(os.Stdout)
	out.diagnostics(diags)

	if analysis.HasErrors(diags) {
		return ErrDiagnosticErrors
	}

	return nil
}

// checkSources analyzes cfg against mem through the logging decorator.
func checkSources(cfg *graphcat.Config, mem *graphcat.InMemoryCatalog, logger *zap.Logger) []analysis.Diagnostic {
	return analysis.Check(cfg, graphcat.NewLoggingCatalog(mem, logger))
}

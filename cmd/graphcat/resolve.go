package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/rlch/graphcat"
)

// Resolve command errors.
var (
	ErrNoNames    = errors.New("no labels or relationship types given")
	ErrUnresolved = errors.New("unresolved")
)

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the source schema of node labels or relationship types",
		ArgsUsage: "NAME...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "rel",
				Aliases: []string{"r"},
				Usage:   "resolve relationship types instead of node labels",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print resolution counters after the schemas",
			},
		},
		Action: runResolve,
	}
}

func runResolve(_ context.Context, cmd *cli.Command) error {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		return ErrNoNames
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	mem, err := s.loadSources(cmd)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	cat := graphcat.NewInstrumentedCatalog(graphcat.NewLoggingCatalog(mem, s.logger), reg)

	kind := graphcat.KindNode
	lookup := cat.NodeSource

	if cmd.Bool("rel") {
		kind = graphcat.KindRelationship
		lookup = cat.RelationshipSource
	}

	out := newPrinter(os.Stdout)

	var unresolved []string

	for _, name := range names {
		src, ok := lookup(name)
		if !ok {
			unresolved = append(unresolved, name)
			out.missing(kind, name)

			continue
		}

		out.source(kind, name, src.Schema())
	}

	if cmd.Bool("stats") {
		families, err := reg.Gather()
		if err != nil {
			return fmt.Errorf("gathering stats: %w", err)
		}

		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				labels := make([]string, 0, len(m.GetLabel()))
				for _, l := range m.GetLabel() {
					labels = append(labels, l.GetName()+"="+l.GetValue())
				}

				out.stat(mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			}
		}
	}

	if len(unresolved) > 0 {
		return fmt.Errorf("%w %s: %s", ErrUnresolved, kind, strings.Join(unresolved, ", "))
	}

	return nil
}

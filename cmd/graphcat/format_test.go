package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/graphcat"
	"github.com/rlch/graphcat/analysis"
)

func TestPrinter_Source(t *testing.T) {
	var buf bytes.Buffer

	p := newPrinter(&buf)
	p.source(graphcat.KindNode, "Person", graphcat.NewSchema(
		graphcat.Field{Name: "id", Type: graphcat.Int64},
		graphcat.Field{Name: "name", Type: graphcat.String, Nullable: true},
	))
	p.source(graphcat.KindRelationship, "LIKES", graphcat.EmptySchema())
	p.missing(graphcat.KindNode, "Foo")

	want := "node Person\n" +
		"  id: int64\n" +
		"  name: string?\n" +
		"relationship LIKES\n" +
		"  (no columns)\n" +
		"node Foo: not found\n"

	assert.Equal(t, want, buf.String())
}

func TestPrinter_Diagnostics(t *testing.T) {
	var buf bytes.Buffer

	p := newPrinter(&buf)
	p.diagnostics(nil)
	assert.Equal(t, "no problems found\n", buf.String())

	buf.Reset()
	p.diagnostics([]analysis.Diagnostic{
		{Severity: analysis.SeverityError, Code: "unknown-label", Kind: graphcat.KindNode, Subject: "Foo", Message: "unknown label 'Foo'"},
		{Severity: analysis.SeverityWarning, Code: "unmapped-source", Kind: graphcat.KindRelationship, Subject: "KNOWS", Message: "no mapping"},
		{Severity: analysis.SeverityWarning, Code: "empty-source", Kind: graphcat.KindNode, Subject: "Tag", Message: "no columns"},
	})

	want := "error[unknown-label] node Foo: unknown label 'Foo'\n" +
		"warning[unmapped-source] relationship KNOWS: no mapping\n" +
		"warning[empty-source] node Tag: no columns\n" +
		"1 error, 2 warnings\n"

	assert.Equal(t, want, buf.String())
}

func TestLoadConfigWithDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".graphcat.yaml")

	err := os.WriteFile(path, []byte("sources: sources.yaml\nlog:\n  level: info\n"), 0o600)
	require.NoError(t, err)

	cfg, cfgDir, err := loadConfigWithDir(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfgDir)
	assert.Equal(t, filepath.Join(dir, "sources.yaml"), cfg.SourcesPath(cfgDir))

	_, _, err = loadConfigWithDir(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "debug disabled by default")

	logger, err = newLogger("info", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "--debug overrides config")

	_, err = newLogger("loud", false)
	require.Error(t, err)
}

func TestNeo4jConfig_FlagsOverrideConfig(t *testing.T) {
	cfg := &graphcat.Config{
		Neo4j: &graphcat.Neo4jConfig{URI: "bolt://config:7687", Username: "neo4j", Database: "graph"},
	}

	var got *graphcat.Neo4jConfig

	cmd := introspectCommand()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		got = neo4jConfig(cfg, c)

		return nil
	}

	err := cmd.Run(context.Background(), []string{"introspect", "--uri", "bolt://flag:7687", "--timeout", "5s"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "bolt://flag:7687", got.URI)
	assert.Equal(t, "neo4j", got.Username)
	assert.Equal(t, "graph", got.Database)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Equal(t, "bolt://config:7687", cfg.Neo4j.URI, "config is not modified")
}

func TestCheckSources_ReportsCatalogWarnings(t *testing.T) {
	mem := graphcat.NewInMemoryCatalog().
		WithNodeSource("Person", graphcat.NewSimpleTableSource(graphcat.NewSchema(
			graphcat.Field{Name: "id", Type: graphcat.Int64},
		))).
		WithNodeSource("Tag", graphcat.EmptyTableSource())

	cfg := &graphcat.Config{
		Nodes: []graphcat.NodeMapping{{Label: "Person", IDField: "id"}},
	}

	diags := checkSources(cfg, mem, zap.NewNop())

	var codes []string
	for _, d := range diags {
		codes = append(codes, d.Code+" "+d.Subject)
	}

	assert.ElementsMatch(t, []string{"empty-source Tag", "unmapped-source Tag"}, codes)
	assert.False(t, analysis.HasErrors(diags))
}

func TestWriteSources_File(t *testing.T) {
	cat := graphcat.NewInMemoryCatalog().
		WithNodeSource("Person", graphcat.NewSimpleTableSource(graphcat.NewSchema(
			graphcat.Field{Name: "id", Type: graphcat.Int64},
		)))

	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, writeSources(path, nil, cat))

	reloaded, err := graphcat.LoadSourceFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Person"}, reloaded.NodeLabels())

	var buf bytes.Buffer
	require.NoError(t, writeSources("", &buf, cat))
	assert.Contains(t, buf.String(), "Person")

	err = writeSources(filepath.Join(t.TempDir(), "missing", "sources.yaml"), nil, cat)
	require.Error(t, err)
}

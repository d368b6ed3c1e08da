package graphcat_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rlch/graphcat"
)

func sampleCatalog() *graphcat.InMemoryCatalog {
	return graphcat.NewInMemoryCatalog().
		WithNodeSource("Person", personSource()).
		WithRelationshipSource("KNOWS", knowsSource())
}

func TestLoggingCatalog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	cat := graphcat.NewLoggingCatalog(sampleCatalog(), zap.New(core))

	src, ok := cat.NodeSource("Person")
	require.True(t, ok)
	assert.Equal(t, 2, src.Schema().Len())

	_, ok = cat.NodeSource("Company")
	assert.False(t, ok)

	_, ok = cat.RelationshipSource("KNOWS")
	assert.True(t, ok)

	_, ok = cat.NodeMapping("Person")
	assert.False(t, ok)

	entries := logs.FilterMessage("resolve node source").AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"label": "Person", "found": true, "columns": int64(2)}, entries[0].ContextMap())
	assert.Equal(t, map[string]any{"label": "Company", "found": false}, entries[1].ContextMap())
	assert.Equal(t, "catalog", entries[0].LoggerName)

	assert.Equal(t, 1, logs.FilterMessage("resolve relationship source").Len())
	assert.Equal(t, 1, logs.FilterMessage("resolve node mapping").Len())
}

func TestLoggingCatalog_NilLogger(t *testing.T) {
	t.Parallel()

	cat := graphcat.NewLoggingCatalog(sampleCatalog(), nil)

	_, ok := cat.NodeSource("Person")
	assert.True(t, ok)
	_, ok = cat.RelationshipMapping("KNOWS")
	assert.False(t, ok)
}

func TestLoggingCatalog_InfoLevelSkipsDebug(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	cat := graphcat.NewLoggingCatalog(sampleCatalog(), zap.New(core))

	_, _ = cat.NodeSource("Person")
	_, _ = cat.RelationshipSource("Missing")

	assert.Equal(t, 0, logs.Len())
}

func TestInstrumentedCatalog(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	cat := graphcat.NewInstrumentedCatalog(sampleCatalog(), reg)

	_, _ = cat.NodeSource("Person")
	_, _ = cat.NodeSource("Person")
	_, _ = cat.NodeSource("Company")
	_, _ = cat.RelationshipSource("KNOWS")
	_, _ = cat.RelationshipSource("LIKES")
	_, _ = cat.NodeMapping("Person")
	_, _ = cat.RelationshipMapping("KNOWS")

	counter := func(kind, outcome string) float64 {
		return testutil.ToFloat64(cat.Resolutions().WithLabelValues(kind, outcome))
	}

	assert.InDelta(t, 2, counter(graphcat.KindNode, graphcat.OutcomeHit), 0)
	assert.InDelta(t, 1, counter(graphcat.KindNode, graphcat.OutcomeMiss), 0)
	assert.InDelta(t, 1, counter(graphcat.KindRelationship, graphcat.OutcomeHit), 0)
	assert.InDelta(t, 1, counter(graphcat.KindRelationship, graphcat.OutcomeMiss), 0)
	assert.InDelta(t, 1, counter(graphcat.KindNodeMapping, graphcat.OutcomeMiss), 0)
	assert.InDelta(t, 1, counter(graphcat.KindRelationshipMapping, graphcat.OutcomeMiss), 0)

	count, err := testutil.GatherAndCount(reg, "graphcat_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestDecorators_Compose(t *testing.T) {
	t.Parallel()

	inner := mappingCatalog{sampleCatalog()}
	cat := graphcat.NewLoggingCatalog(graphcat.NewInstrumentedCatalog(inner, prometheus.NewRegistry()), zap.NewNop())

	m, ok := cat.NodeMapping("Person")
	require.True(t, ok, "mappings pass through decorators")
	assert.Equal(t, "Person", m.Label)
}

func TestInstrumentedCatalog_SharedRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first := graphcat.NewInstrumentedCatalog(sampleCatalog(), reg)

	var second *graphcat.InstrumentedCatalog

	require.NotPanics(t, func() {
		second = graphcat.NewInstrumentedCatalog(graphcat.NewInMemoryCatalog(), reg)
	})

	_, _ = first.NodeSource("Person")
	_, _ = second.NodeSource("Person")

	assert.Same(t, first.Resolutions(), second.Resolutions())
	assert.InDelta(t, 1, testutil.ToFloat64(first.Resolutions().WithLabelValues(graphcat.KindNode, graphcat.OutcomeHit)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(first.Resolutions().WithLabelValues(graphcat.KindNode, graphcat.OutcomeMiss)), 0)
}

func TestInstrumentedCatalog_ConflictingCollectorPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "graphcat_resolutions_total",
		Help: "Catalog lookups by kind and outcome",
	}))

	assert.Panics(t, func() {
		graphcat.NewInstrumentedCatalog(sampleCatalog(), reg)
	})
}

func TestDecorators_ForwardEnumeration(t *testing.T) {
	t.Parallel()

	mem := sampleCatalog()
	cat := graphcat.NewLoggingCatalog(graphcat.NewInstrumentedCatalog(mem, prometheus.NewRegistry()), nil)

	lister, ok := cat.(graphcat.SourceLister)
	require.True(t, ok)
	assert.Equal(t, []string{"Person"}, lister.NodeLabels())
	assert.Equal(t, []string{"KNOWS"}, lister.RelationshipTypes())

	opaque := graphcat.NewLoggingCatalog(graphcat.WithDefaultMappings(sourceOnly{src: personSource()}), nil)
	lister, ok = opaque.(graphcat.SourceLister)
	require.True(t, ok)
	assert.Nil(t, lister.NodeLabels())
	assert.Nil(t, lister.RelationshipTypes())
}

package graphcat

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedCatalog counts lookups on a wrapped catalog.
type InstrumentedCatalog struct {
	inner       Catalog
	resolutions *prometheus.CounterVec
}

var (
	_ Catalog      = (*InstrumentedCatalog)(nil)
	_ SourceLister = (*InstrumentedCatalog)(nil)
)

// NewInstrumentedCatalog wraps inner and registers its counters with reg.
// A nil reg registers with prometheus.DefaultRegisterer. Catalogs created
// on the same registerer share one counter vector.
//
// Exposed metric:
//
//	graphcat_resolutions_total{kind="node|relationship|node_mapping|relationship_mapping", outcome="hit|miss"}
//
// It panics if reg holds a different collector under the same name.
func NewInstrumentedCatalog(inner Catalog, reg prometheus.Registerer) *InstrumentedCatalog {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "graphcat_resolutions_total",
		Help: "Catalog lookups by kind and outcome",
	}, []string{"kind", "outcome"})

	if err := reg.Register(resolutions); err != nil {
		var alreadyErr prometheus.AlreadyRegisteredError
		if !errors.As(err, &alreadyErr) {
			panic(err)
		}

		existing, ok := alreadyErr.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			panic(err)
		}

		resolutions = existing
	}

	return &InstrumentedCatalog{inner: inner, resolutions: resolutions}
}

// Resolutions returns the counter vector, for tests and custom exporters.
func (c *InstrumentedCatalog) Resolutions() *prometheus.CounterVec {
	return c.resolutions
}

func (c *InstrumentedCatalog) observe(kind string, ok bool) {
	outcome := OutcomeMiss
	if ok {
		outcome = OutcomeHit
	}

	c.resolutions.WithLabelValues(kind, outcome).Inc()
}

// NodeSource resolves through the wrapped catalog.
func (c *InstrumentedCatalog) NodeSource(label string) (TableSource, bool) {
	src, ok := c.inner.NodeSource(label)
	c.observe(KindNode, ok)

	return src, ok
}

// RelationshipSource resolves through the wrapped catalog.
func (c *InstrumentedCatalog) RelationshipSource(relType string) (TableSource, bool) {
	src, ok := c.inner.RelationshipSource(relType)
	c.observe(KindRelationship, ok)

	return src, ok
}

// NodeMapping resolves through the wrapped catalog.
func (c *InstrumentedCatalog) NodeMapping(label string) (NodeMapping, bool) {
	m, ok := c.inner.NodeMapping(label)
	c.observe(KindNodeMapping, ok)

	return m, ok
}

// RelationshipMapping resolves through the wrapped catalog.
func (c *InstrumentedCatalog) RelationshipMapping(relType string) (RelationshipMapping, bool) {
	m, ok := c.inner.RelationshipMapping(relType)
	c.observe(KindRelationshipMapping, ok)

	return m, ok
}

// NodeLabels enumerates the wrapped catalog's labels, if it can. It is not counted.
func (c *InstrumentedCatalog) NodeLabels() []string {
	labels, _ := listSources(c.inner)

	return labels
}

// RelationshipTypes enumerates the wrapped catalog's relationship types, if
// it can. It is not counted.
func (c *InstrumentedCatalog) RelationshipTypes() []string {
	_, relTypes := listSources(c.inner)

	return relTypes
}

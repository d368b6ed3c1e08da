package graphcat

import (
	"maps"
	"slices"
)

// InMemoryCatalog is a Catalog backed by two maps, one for node labels and
// one for relationship types. Keys match exactly.
//
// Registration is not synchronized: build the catalog first, then share it.
// Once handed out it is read-only and safe for concurrent lookups.
type InMemoryCatalog struct {
	DefaultMappings

	nodeSources map[string]TableSource
	relSources  map[string]TableSource
}

var _ Catalog = (*InMemoryCatalog)(nil)

// NewInMemoryCatalog creates an empty catalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		nodeSources: make(map[string]TableSource),
		relSources:  make(map[string]TableSource),
	}
}

// WithNodeSource registers src for label and returns the catalog.
// A second registration for the same label replaces the first.
// It panics if src is nil or reports a nil schema.
func (c *InMemoryCatalog) WithNodeSource(label string, src TableSource) *InMemoryCatalog {
	mustHaveSchema(label, src)

	if c.nodeSources == nil {
		c.nodeSources = make(map[string]TableSource)
	}

	c.nodeSources[label] = src

	return c
}

// WithRelationshipSource registers src for relType and returns the catalog.
// A second registration for the same type replaces the first.
// It panics if src is nil or reports a nil schema.
func (c *InMemoryCatalog) WithRelationshipSource(relType string, src TableSource) *InMemoryCatalog {
	mustHaveSchema(relType, src)

	if c.relSources == nil {
		c.relSources = make(map[string]TableSource)
	}

	c.relSources[relType] = src

	return c
}

// NodeSource returns the source registered for label.
func (c *InMemoryCatalog) NodeSource(label string) (TableSource, bool) {
	src, ok := c.nodeSources[label]

	return src, ok
}

// RelationshipSource returns the source registered for relType.
func (c *InMemoryCatalog) RelationshipSource(relType string) (TableSource, bool) {
	src, ok := c.relSources[relType]

	return src, ok
}

// NodeLabels returns the registered labels in sorted order.
func (c *InMemoryCatalog) NodeLabels() []string {
	return slices.Sorted(maps.Keys(c.nodeSources))
}

// RelationshipTypes returns the registered relationship types in sorted order.
func (c *InMemoryCatalog) RelationshipTypes() []string {
	return slices.Sorted(maps.Keys(c.relSources))
}

func mustHaveSchema(name string, src TableSource) {
	if src == nil {
		panic("graphcat: nil table source for " + name)
	}

	if src.Schema() == nil {
		panic("graphcat: table source for " + name + " has nil schema")
	}
}

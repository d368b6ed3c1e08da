package graphcat

// SourceResolver resolves node labels and relationship types to table sources.
//
// A miss is reported as (nil, false); it is not an error. Whether an
// unresolved name is fatal is up to the caller.
//
// Implementations must be safe for concurrent use without external locking
// and must not block indefinitely. An implementation backed by I/O applies
// its own bounded wait and reports failure as a miss or through its own
// construction path.
type SourceResolver interface {
	// NodeSource returns the table source registered for a node label.
	NodeSource(label string) (TableSource, bool)

	// RelationshipSource returns the table source registered for a
	// relationship type.
	RelationshipSource(relType string) (TableSource, bool)
}

// Catalog is the metadata capability a graph-query planner depends on.
//
// Besides source resolution, a catalog may supply mappings for labels and
// relationship types. Most catalogs do not: they embed DefaultMappings, and
// mapping metadata then comes from configuration.
type Catalog interface {
	SourceResolver

	// NodeMapping returns the catalog's mapping for a node label, if it has one.
	NodeMapping(label string) (NodeMapping, bool)

	// RelationshipMapping returns the catalog's mapping for a relationship
	// type, if it has one.
	RelationshipMapping(relType string) (RelationshipMapping, bool)
}

// SourceLister is implemented by catalogs that can enumerate their entries,
// such as InMemoryCatalog. Both lists are sorted.
type SourceLister interface {
	NodeLabels() []string
	RelationshipTypes() []string
}

// listSources enumerates inner if it is a SourceLister, and returns nil
// otherwise. Decorators use it to pass enumeration through.
func listSources(inner Catalog) (labels, relTypes []string) {
	lister, ok := inner.(SourceLister)
	if !ok {
		return nil, nil
	}

	return lister.NodeLabels(), lister.RelationshipTypes()
}

// DefaultMappings provides the default mapping behavior for a Catalog:
// every lookup reports absence, leaving configuration authoritative.
// Embed it in catalogs that only resolve sources.
type DefaultMappings struct{}

// NodeMapping always reports absence.
func (DefaultMappings) NodeMapping(string) (NodeMapping, bool) {
	return NodeMapping{}, false
}

// RelationshipMapping always reports absence.
func (DefaultMappings) RelationshipMapping(string) (RelationshipMapping, bool) {
	return RelationshipMapping{}, false
}

// WithDefaultMappings adapts a SourceResolver into a Catalog.
// If r already implements Catalog it is returned unchanged.
func WithDefaultMappings(r SourceResolver) Catalog {
	if c, ok := r.(Catalog); ok {
		return c
	}

	return resolverCatalog{SourceResolver: r}
}

type resolverCatalog struct {
	SourceResolver
	DefaultMappings
}

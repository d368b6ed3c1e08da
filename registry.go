package graphcat

import (
	"fmt"
	"maps"
	"slices"
)

// IntrospectorFactory creates a SchemaIntrospector from database-specific
// configuration, such as *Neo4jConfig.
type IntrospectorFactory func(cfg any) (SchemaIntrospector, error)

var introspectors = make(map[string]IntrospectorFactory)

// RegisterIntrospector registers an introspector factory by database name.
// Database packages call it from init.
func RegisterIntrospector(name string, factory IntrospectorFactory) {
	introspectors[name] = factory
}

// NewIntrospector creates an introspector for the named database.
func NewIntrospector(name string, cfg any) (SchemaIntrospector, error) {
	factory, ok := introspectors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDatabase, name)
	}

	return factory(cfg)
}

// RegisteredIntrospectors returns the names of all registered databases, sorted.
func RegisteredIntrospectors() []string {
	return slices.Sorted(maps.Keys(introspectors))
}

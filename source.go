package graphcat

// TableSource is a schema-bearing handle for a relational source.
// Implementations are immutable and safe to share between goroutines and
// between catalog entries. Callers that need the concrete implementation
// use a type assertion.
type TableSource interface {
	// Schema returns the columns of the source. It never returns nil.
	Schema() *Schema
}

// SimpleTableSource is a TableSource with a fixed schema and no backing data.
// It is mainly used to build catalogs in tests and from source files.
type SimpleTableSource struct {
	schema *Schema
}

// NewSimpleTableSource creates a source reporting the given schema.
// A nil schema is treated as the empty schema.
func NewSimpleTableSource(schema *Schema) *SimpleTableSource {
	if schema == nil {
		schema = EmptySchema()
	}

	return &SimpleTableSource{schema: schema}
}

// EmptyTableSource creates a source whose schema has no columns.
func EmptyTableSource() *SimpleTableSource {
	return &SimpleTableSource{schema: EmptySchema()}
}

// Schema returns the schema the source was created with.
func (s *SimpleTableSource) Schema() *Schema {
	return s.schema
}

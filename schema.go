package graphcat

import (
	"context"
	"strings"
)

// SchemaIntrospector is implemented by databases that can discover table
// sources for their labels and relationship types.
type SchemaIntrospector interface {
	// IntrospectCatalog extracts a catalog snapshot from the database.
	// The returned catalog performs no I/O on lookup.
	IntrospectCatalog(ctx context.Context) (*InMemoryCatalog, error)

	// Close releases any resources held by the introspector.
	Close() error
}

// Field is a named, typed column.
type Field struct {
	Name     string   `yaml:"name"`
	Type     DataType `yaml:"type"`
	Nullable bool     `yaml:"nullable,omitempty"`
}

// Equal reports whether two fields have the same name, type and nullability.
func (f Field) Equal(other Field) bool {
	return f.Name == other.Name && f.Nullable == other.Nullable && f.Type.Equal(other.Type)
}

func (f Field) clone() Field {
	f.Type = f.Type.clone()

	return f
}

// String returns "name: type", with a trailing "?" for nullable columns.
func (f Field) String() string {
	s := f.Name + ": " + f.Type.String()
	if f.Nullable {
		s += "?"
	}

	return s
}

// Schema is an immutable, ordered list of columns.
// Construct with NewSchema or EmptySchema; the zero value and a nil *Schema
// both behave as a schema with no columns.
type Schema struct {
	fields []Field
	index  map[string]int
}

var emptySchema = &Schema{}

// NewSchema creates a schema from the given fields. The fields, including
// list element types, are copied.
// If a name appears more than once, lookups by name return the first one.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		s.fields[i] = f.clone()
	}

	for i, f := range s.fields {
		if _, exists := s.index[f.Name]; !exists {
			s.index[f.Name] = i
		}
	}

	return s
}

// EmptySchema returns a schema with zero columns.
func EmptySchema() *Schema {
	return emptySchema
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}

	return len(s.fields)
}

// Field returns the i'th column. It panics if i is out of range.
func (s *Schema) Field(i int) Field {
	return s.fields[i].clone()
}

// Fields returns a copy of the columns in order.
func (s *Schema) Fields() []Field {
	if s.Len() == 0 {
		return nil
	}

	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}

	return out
}

// Names returns the column names in order.
func (s *Schema) Names() []string {
	if s.Len() == 0 {
		return nil
	}

	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}

	return names
}

// IndexOf returns the position of the named column, or -1.
func (s *Schema) IndexOf(name string) int {
	if s == nil {
		return -1
	}

	i, ok := s.index[name]
	if !ok {
		return -1
	}

	return i
}

// FieldByName looks up a column by exact name.
func (s *Schema) FieldByName(name string) (Field, bool) {
	i := s.IndexOf(name)
	if i < 0 {
		return Field{}, false
	}

	return s.fields[i].clone(), true
}

// Equal reports whether two schemas have the same columns in the same order.
func (s *Schema) Equal(other *Schema) bool {
	if s.Len() != other.Len() {
		return false
	}

	for i := range s.Len() {
		if !s.fields[i].Equal(other.fields[i]) {
			return false
		}
	}

	return true
}

// String renders the schema as "[id: int64, name: string?]".
func (s *Schema) String() string {
	parts := make([]string, 0, s.Len())
	for i := range s.Len() {
		parts = append(parts, s.fields[i].String())
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

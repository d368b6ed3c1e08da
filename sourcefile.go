package graphcat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// NamedTableSource is a SimpleTableSource declared under a name in the
// tables section of a source file. Every label or relationship type that
// references the table resolves to the same NamedTableSource.
type NamedTableSource struct {
	*SimpleTableSource

	name string
}

// NewNamedTableSource creates a named source with the given schema.
func NewNamedTableSource(name string, schema *Schema) *NamedTableSource {
	return &NamedTableSource{SimpleTableSource: NewSimpleTableSource(schema), name: name}
}

// TableName returns the name the table was declared under.
func (s *NamedTableSource) TableName() string {
	return s.name
}

// yamlSources is the YAML representation of a source file.
type yamlSources struct {
	Tables        map[string]*yamlTable  `yaml:"tables,omitempty"`
	Nodes         map[string]*yamlSource `yaml:"nodes,omitempty"`
	Relationships map[string]*yamlSource `yaml:"relationships,omitempty"`
}

// yamlTable is a shared table declaration.
type yamlTable struct {
	Columns []Field `yaml:"columns"`
}

// yamlSource is a label or relationship type entry. Exactly one of Table
// and Columns is set.
type yamlSource struct {
	Table   string  `yaml:"table,omitempty"`
	Columns []Field `yaml:"columns,omitempty"`
}

// LoadSourceFile loads an in-memory catalog from a YAML source file.
// The path can be absolute or relative to baseDir.
func LoadSourceFile(path, baseDir string) (*InMemoryCatalog, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	cat, err := ParseSources(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cat, nil
}

// ParseSources builds an in-memory catalog from source file YAML.
func ParseSources(data []byte) (*InMemoryCatalog, error) {
	var ys yamlSources
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}

	tables := make(map[string]*NamedTableSource, len(ys.Tables))

	for name, yt := range ys.Tables {
		if name == "" {
			return nil, fmt.Errorf("%w: table", ErrEmptyName)
		}

		if yt == nil {
			yt = &yamlTable{}
		}

		schema, err := buildSchema(yt.Columns)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}

		tables[name] = NewNamedTableSource(name, schema)
	}

	cat := NewInMemoryCatalog()

	for label, e := range ys.Nodes {
		src, err := resolveEntry(label, e, tables)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", label, err)
		}

		cat.WithNodeSource(label, src)
	}

	for relType, e := range ys.Relationships {
		src, err := resolveEntry(relType, e, tables)
		if err != nil {
			return nil, fmt.Errorf("relationship %s: %w", relType, err)
		}

		cat.WithRelationshipSource(relType, src)
	}

	return cat, nil
}

func resolveEntry(name string, e *yamlSource, tables map[string]*NamedTableSource) (TableSource, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if e == nil || (e.Table == "") == (len(e.Columns) == 0) {
		return nil, fmt.Errorf("%w: need exactly one of table or columns", ErrInvalidSource)
	}

	if e.Table != "" {
		t, ok := tables[e.Table]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, e.Table)
		}

		return t, nil
	}

	schema, err := buildSchema(e.Columns)
	if err != nil {
		return nil, err
	}

	return NewSimpleTableSource(schema), nil
}

func buildSchema(columns []Field) (*Schema, error) {
	seen := make(map[string]struct{}, len(columns))

	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("%w: column %d", ErrEmptyName, i)
		}

		if col.Type.Kind == "" {
			return nil, fmt.Errorf("%w: column %s has no type", ErrUnknownDataType, col.Name)
		}

		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
		}

		seen[col.Name] = struct{}{}
	}

	return NewSchema(columns...), nil
}

// WriteSources writes cat as source file YAML. Keys are sorted, so output
// is deterministic.
//
// Named tables are written to the tables section and referenced by name.
// An unnamed source used by more than one label or relationship type, or
// one with no columns, is written as a table named "_<kind>_<name>" after
// its first user; other sources are inlined. Reading the output back yields
// the same sharing between labels and relationship types. Tables that no
// label or relationship type references are not part of the catalog and
// are not written.
//
// It returns ErrDuplicateTable if two distinct sources claim the same table
// name.
func WriteSources(w io.Writer, cat *InMemoryCatalog) error {
	ys := yamlSources{
		Tables:        make(map[string]*yamlTable),
		Nodes:         make(map[string]*yamlSource),
		Relationships: make(map[string]*yamlSource),
	}

	type use struct {
		kind, name string
		src        TableSource
	}

	var uses []use

	for _, label := range cat.NodeLabels() {
		src, _ := cat.NodeSource(label)
		uses = append(uses, use{KindNode, label, src})
	}

	for _, relType := range cat.RelationshipTypes() {
		src, _ := cat.RelationshipSource(relType)
		uses = append(uses, use{KindRelationship, relType, src})
	}

	// Unnamed handles are only tracked when they are pointers, so they are
	// safe map keys.
	refs := make(map[*SimpleTableSource]int)

	for _, u := range uses {
		if simple, ok := u.src.(*SimpleTableSource); ok {
			refs[simple]++
		}
	}

	owners := make(map[string]TableSource)
	generated := make(map[*SimpleTableSource]string)

	tableFor := func(u use) string {
		if named, ok := u.src.(interface{ TableName() string }); ok && named.TableName() != "" {
			return named.TableName()
		}

		simple, _ := u.src.(*SimpleTableSource)
		if name, ok := generated[simple]; ok {
			return name
		}

		if refs[simple] < 2 && u.src.Schema().Len() > 0 {
			return ""
		}

		name := "_" + u.kind + "_" + u.name
		if simple != nil {
			generated[simple] = name
		}

		return name
	}

	for _, u := range uses {
		tableName := tableFor(u)

		entry := &yamlSource{Table: tableName}

		if tableName == "" {
			entry = &yamlSource{Columns: u.src.Schema().Fields()}
		} else {
			if owner, seen := owners[tableName]; seen && owner != u.src {
				return fmt.Errorf("%w: %s", ErrDuplicateTable, tableName)
			}

			owners[tableName] = u.src
			ys.Tables[tableName] = &yamlTable{Columns: nonNil(u.src.Schema().Fields())}
		}

		if u.kind == KindNode {
			ys.Nodes[u.name] = entry
		} else {
			ys.Relationships[u.name] = entry
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(ys); err != nil {
		return err
	}

	return enc.Close()
}

func nonNil(fields []Field) []Field {
	if fields == nil {
		return []Field{}
	}

	return fields
}

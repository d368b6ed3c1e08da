package graphcat

import "errors"

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .graphcat.yaml is found.
	ErrConfigNotFound = errors.New("graphcat: no .graphcat.yaml found")

	// ErrAmbiguousConfig is returned when one directory holds more than one
	// config file.
	ErrAmbiguousConfig = errors.New("graphcat: multiple config files")

	// ErrDuplicateMapping is returned when a config maps the same label or
	// relationship type more than once.
	ErrDuplicateMapping = errors.New("graphcat: duplicate mapping")

	// ErrInvalidConfig is returned when a config fails struct validation.
	ErrInvalidConfig = errors.New("graphcat: invalid config")

	// ErrUnknownDataType is returned when a column type name is not recognized.
	ErrUnknownDataType = errors.New("graphcat: unknown data type")

	// ErrUnknownTable is returned when a source entry references a table
	// that is not declared in the same file.
	ErrUnknownTable = errors.New("graphcat: unknown table")

	// ErrDuplicateTable is returned when two distinct sources would be
	// written under the same table name.
	ErrDuplicateTable = errors.New("graphcat: duplicate table")

	// ErrInvalidSource is returned when a source entry declares both or
	// neither of a table reference and inline columns.
	ErrInvalidSource = errors.New("graphcat: invalid source")

	// ErrDuplicateColumn is returned when a schema declares the same column twice.
	ErrDuplicateColumn = errors.New("graphcat: duplicate column")

	// ErrUnknownDatabase is returned when no introspector is registered
	// for a database name.
	ErrUnknownDatabase = errors.New("graphcat: unknown database")

	// ErrEmptyName is returned for empty labels, relationship types, tables
	// or column names in configuration input.
	ErrEmptyName = errors.New("graphcat: empty name")
)

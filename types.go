package graphcat

import (
	"fmt"
	"strings"
)

// TypeKind identifies a logical column type.
type TypeKind string

// Type kind constants.
const (
	KindBool      TypeKind = "bool"
	KindInt8      TypeKind = "int8"
	KindInt16     TypeKind = "int16"
	KindInt32     TypeKind = "int32"
	KindInt64     TypeKind = "int64"
	KindUint8     TypeKind = "uint8"
	KindUint16    TypeKind = "uint16"
	KindUint32    TypeKind = "uint32"
	KindUint64    TypeKind = "uint64"
	KindFloat32   TypeKind = "float32"
	KindFloat64   TypeKind = "float64"
	KindString    TypeKind = "string"
	KindBinary    TypeKind = "binary"
	KindDate      TypeKind = "date"
	KindTimestamp TypeKind = "timestamp"
	KindList      TypeKind = "list" // list<T>
)

// DataType is the logical type of a column.
// Elem is set only for KindList.
type DataType struct {
	Kind TypeKind
	Elem *DataType
}

// Predeclared data types.
var (
	Bool      = DataType{Kind: KindBool}
	Int8      = DataType{Kind: KindInt8}
	Int16     = DataType{Kind: KindInt16}
	Int32     = DataType{Kind: KindInt32}
	Int64     = DataType{Kind: KindInt64}
	Uint8     = DataType{Kind: KindUint8}
	Uint16    = DataType{Kind: KindUint16}
	Uint32    = DataType{Kind: KindUint32}
	Uint64    = DataType{Kind: KindUint64}
	Float32   = DataType{Kind: KindFloat32}
	Float64   = DataType{Kind: KindFloat64}
	String    = DataType{Kind: KindString}
	Binary    = DataType{Kind: KindBinary}
	Date      = DataType{Kind: KindDate}
	Timestamp = DataType{Kind: KindTimestamp}
)

// ListOf returns a list type with the given element type.
func ListOf(elem DataType) DataType {
	return DataType{Kind: KindList, Elem: &elem}
}

// clone returns t with its Elem chain copied, so the result shares no
// pointers with t.
func (t DataType) clone() DataType {
	if t.Elem != nil {
		elem := t.Elem.clone()
		t.Elem = &elem
	}

	return t
}

// String returns the canonical name of the type, e.g. "int64" or "list<string>".
func (t DataType) String() string {
	if t.Kind == KindList {
		if t.Elem == nil {
			return "list<?>"
		}

		return "list<" + t.Elem.String() + ">"
	}

	return string(t.Kind)
}

// Equal reports whether two data types are identical.
func (t DataType) Equal(other DataType) bool {
	if t.Kind != other.Kind {
		return false
	}

	if t.Kind != KindList {
		return true
	}

	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}

	return t.Elem.Equal(*other.Elem)
}

// IsNumeric reports whether the type is an integer or floating point type.
func (t DataType) IsNumeric() bool {
	switch t.Kind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

var primitiveKinds = map[string]TypeKind{
	"bool":      KindBool,
	"boolean":   KindBool,
	"int8":      KindInt8,
	"int16":     KindInt16,
	"int32":     KindInt32,
	"int64":     KindInt64,
	"int":       KindInt64,
	"uint8":     KindUint8,
	"uint16":    KindUint16,
	"uint32":    KindUint32,
	"uint64":    KindUint64,
	"float32":   KindFloat32,
	"float64":   KindFloat64,
	"float":     KindFloat64,
	"string":    KindString,
	"utf8":      KindString,
	"binary":    KindBinary,
	"bytes":     KindBinary,
	"date":      KindDate,
	"timestamp": KindTimestamp,
}

// ParseDataType parses a type name into a DataType.
// Supports the canonical names plus a few aliases:
//
//	"int"            -> int64
//	"float"          -> float64
//	"utf8"           -> string
//	"[]string"       -> list<string>
//	"list<int64>"    -> list<int64>
func ParseDataType(s string) (DataType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DataType{}, fmt.Errorf("%w: empty type name", ErrUnknownDataType)
	}

	if rest, ok := strings.CutPrefix(s, "[]"); ok {
		elem, err := ParseDataType(rest)
		if err != nil {
			return DataType{}, err
		}

		return ListOf(elem), nil
	}

	if strings.HasPrefix(s, "list<") {
		if !strings.HasSuffix(s, ">") {
			return DataType{}, fmt.Errorf("%w: %s", ErrUnknownDataType, s)
		}

		elem, err := ParseDataType(s[len("list<") : len(s)-1])
		if err != nil {
			return DataType{}, err
		}

		return ListOf(elem), nil
	}

	kind, ok := primitiveKinds[s]
	if !ok {
		return DataType{}, fmt.Errorf("%w: %s", ErrUnknownDataType, s)
	}

	return DataType{Kind: kind}, nil
}

// MarshalYAML writes the canonical type name.
func (t DataType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML parses a type name with ParseDataType.
func (t *DataType) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	parsed, err := ParseDataType(s)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

package analysis

import "github.com/rlch/graphcat"

// SchemaEnv builds an expr-lang environment for a schema. Each column maps
// to a representative zero value of its type, so expr can type check
// identifiers and operators against the real columns.
func SchemaEnv(schema *graphcat.Schema) map[string]any {
	env := make(map[string]any, schema.Len())

	for _, f := range schema.Fields() {
		env[f.Name] = dataTypeToExprValue(f.Type)
	}

	return env
}

// dataTypeToExprValue converts a DataType to a representative value for expr.Env().
// expr-lang infers types from the values in the environment.
func dataTypeToExprValue(t graphcat.DataType) any {
	switch t.Kind {
	case graphcat.KindBool:
		return false
	case graphcat.KindInt8, graphcat.KindInt16, graphcat.KindInt32, graphcat.KindInt64:
		return int64(0)
	case graphcat.KindUint8, graphcat.KindUint16, graphcat.KindUint32, graphcat.KindUint64:
		return uint64(0)
	case graphcat.KindFloat32, graphcat.KindFloat64:
		return float64(0)
	case graphcat.KindString:
		return ""
	case graphcat.KindBinary:
		return []byte{}
	case graphcat.KindDate, graphcat.KindTimestamp:
		// Compared as epoch values.
		return int64(0)
	case graphcat.KindList:
		if t.Elem == nil {
			return []any{}
		}

		switch t.Elem.Kind {
		case graphcat.KindString:
			return []string{}
		case graphcat.KindInt8, graphcat.KindInt16, graphcat.KindInt32, graphcat.KindInt64:
			return []int64{}
		case graphcat.KindFloat32, graphcat.KindFloat64:
			return []float64{}
		case graphcat.KindBool:
			return []bool{}
		default:
			return []any{}
		}
	default:
		return map[string]any{}
	}
}

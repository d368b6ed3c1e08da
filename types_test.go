package graphcat_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphcat"
)

func TestParseDataType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  graphcat.DataType
	}{
		{"int64", graphcat.Int64},
		{"int", graphcat.Int64},
		{"INT64", graphcat.Int64},
		{"  string ", graphcat.String},
		{"utf8", graphcat.String},
		{"float", graphcat.Float64},
		{"float32", graphcat.Float32},
		{"boolean", graphcat.Bool},
		{"uint8", graphcat.Uint8},
		{"bytes", graphcat.Binary},
		{"date", graphcat.Date},
		{"timestamp", graphcat.Timestamp},
		{"[]string", graphcat.ListOf(graphcat.String)},
		{"list<int>", graphcat.ListOf(graphcat.Int64)},
		{"[][]float64", graphcat.ListOf(graphcat.ListOf(graphcat.Float64))},
		{"list<list<bool>>", graphcat.ListOf(graphcat.ListOf(graphcat.Bool))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := graphcat.ParseDataType(tt.input)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseDataType(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseDataType_Errors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "  ", "decimal", "list<int", "[]", "list<>", "map[string]int"} {
		_, err := graphcat.ParseDataType(input)
		assert.ErrorIs(t, err, graphcat.ErrUnknownDataType, "input %q", input)
	}
}

func TestDataType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int64", graphcat.Int64.String())
	assert.Equal(t, "list<list<string>>", graphcat.ListOf(graphcat.ListOf(graphcat.String)).String())
	assert.Equal(t, "list<?>", graphcat.DataType{Kind: graphcat.KindList}.String())
}

func TestDataType_IsNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, graphcat.Int32.IsNumeric())
	assert.True(t, graphcat.Float64.IsNumeric())
	assert.False(t, graphcat.String.IsNumeric())
	assert.False(t, graphcat.ListOf(graphcat.Int64).IsNumeric())
}

package graphcat_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/graphcat"
)

func TestEmptyTableSource(t *testing.T) {
	t.Parallel()

	src := graphcat.EmptyTableSource()

	require.NotNil(t, src.Schema())
	assert.Equal(t, 0, src.Schema().Len())
	assert.Nil(t, src.Schema().Fields())
	assert.Same(t, src.Schema(), src.Schema())
}

func TestSimpleTableSource_ReportsSchemaUnchanged(t *testing.T) {
	t.Parallel()

	fields := []graphcat.Field{
		{Name: "id", Type: graphcat.Int64},
		{Name: "name", Type: graphcat.String, Nullable: true},
		{Name: "tags", Type: graphcat.ListOf(graphcat.String)},
	}
	schema := graphcat.NewSchema(fields...)
	src := graphcat.NewSimpleTableSource(schema)

	for range 3 {
		got := src.Schema()
		assert.Same(t, schema, got)

		if diff := cmp.Diff(fields, got.Fields()); diff != "" {
			t.Errorf("Schema().Fields() mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSimpleTableSource_NilSchema(t *testing.T) {
	t.Parallel()

	src := graphcat.NewSimpleTableSource(nil)
	require.NotNil(t, src.Schema())
	assert.Equal(t, 0, src.Schema().Len())
}

func TestSimpleTableSource_DistinctFromEmpty(t *testing.T) {
	t.Parallel()

	cat := graphcat.NewInMemoryCatalog().
		WithNodeSource("Person", personSource()).
		WithNodeSource("Placeholder", graphcat.EmptyTableSource())

	registered, ok := cat.NodeSource("Person")
	require.True(t, ok)
	placeholder, ok := cat.NodeSource("Placeholder")
	require.True(t, ok)

	assert.False(t, registered.Schema().Equal(placeholder.Schema()))
	assert.True(t, placeholder.Schema().Equal(graphcat.EmptySchema()))

	// Type assertion recovers the concrete kind.
	_, isSimple := registered.(*graphcat.SimpleTableSource)
	assert.True(t, isSimple)
}

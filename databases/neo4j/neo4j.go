// Package neo4j builds graphcat catalogs by introspecting a Neo4j database.
//
// Introspection runs once, under the configured timeout, and produces an
// in-memory snapshot. Lookups on the snapshot never touch the network.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"github.com/rlch/graphcat"
)

// ErrInvalidConfig is returned when an invalid configuration is provided.
var ErrInvalidConfig = errors.New("neo4j: expected *graphcat.Neo4jConfig")

// Identity columns added to every introspected source.
const (
	IDColumn       = "_id"  // node element id
	SourceIDColumn = "_src" // start node element id
	TargetIDColumn = "_dst" // end node element id
)

const (
	nodePropertiesQuery = `
		CALL db.schema.nodeTypeProperties()
		YIELD nodeLabels, propertyName, propertyTypes, mandatory
		RETURN nodeLabels, propertyName, propertyTypes, mandatory
	`
	relPropertiesQuery = `
		CALL db.schema.relTypeProperties()
		YIELD relType, propertyName, propertyTypes, mandatory
		RETURN relType, propertyName, propertyTypes, mandatory
	`
)

//nolint:gochecknoinits // Database self-registration pattern
func init() {
	graphcat.RegisterIntrospector(graphcat.DatabaseNeo4j, func(cfg any) (graphcat.SchemaIntrospector, error) {
		neo4jCfg, ok := cfg.(*graphcat.Neo4jConfig)
		if !ok || neo4jCfg == nil {
			return nil, fmt.Errorf("%w, got %T", ErrInvalidConfig, cfg)
		}

		return New(neo4jCfg)
	})
}

// Introspector implements graphcat.SchemaIntrospector for Neo4j.
type Introspector struct {
	driver  neo4j.DriverWithContext
	db      string
	timeout time.Duration
}

var _ graphcat.SchemaIntrospector = (*Introspector)(nil)

// New creates a Neo4j driver from the given configuration and verifies
// connectivity within the configured timeout.
func New(cfg *graphcat.Neo4jConfig) (*Introspector, error) {
	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	i := &Introspector{
		driver:  driver,
		db:      cfg.Database,
		timeout: cfg.EffectiveTimeout(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(context.Background())

		return nil, fmt.Errorf("neo4j: failed to connect: %w", err)
	}

	return i, nil
}

// IntrospectCatalog reads node and relationship property metadata and
// returns one source per label and relationship type.
//
// Node sources start with IDColumn; relationship sources start with
// SourceIDColumn and TargetIDColumn. Properties follow, sorted by name.
func (i *Introspector) IntrospectCatalog(ctx context.Context) (*graphcat.InMemoryCatalog, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var nodeRows, relRows []propertyRow

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := i.query(gctx, nodePropertiesQuery)
		if err != nil {
			return fmt.Errorf("neo4j: failed to get node properties: %w", err)
		}

		nodeRows = nodeRowsFromRecords(records)

		return nil
	})

	g.Go(func() error {
		records, err := i.query(gctx, relPropertiesQuery)
		if err != nil {
			return fmt.Errorf("neo4j: failed to get relationship properties: %w", err)
		}

		relRows = relRowsFromRecords(records)

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildCatalog(nodeRows, relRows), nil
}

// Close releases the driver.
func (i *Introspector) Close() error {
	err := i.driver.Close(context.Background())
	if err != nil {
		return fmt.Errorf("neo4j: failed to close driver: %w", err)
	}

	return nil
}

func (i *Introspector) query(ctx context.Context, cypher string) ([]*neo4j.Record, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithReadersRouting()}
	if i.db != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(i.db))
	}

	result, err := neo4j.ExecuteQuery(ctx, i.driver, cypher, nil, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, err
	}

	return result.Records, nil
}

// propertyRow is one row of db.schema.*TypeProperties.
// Property is empty for labels or types that have no properties.
type propertyRow struct {
	Owner     string
	Property  string
	Types     []string
	Mandatory bool
}

func nodeRowsFromRecords(records []*neo4j.Record) []propertyRow {
	var rows []propertyRow

	for _, record := range records {
		labelsValue, _ := record.Get("nodeLabels")
		labels, _ := labelsValue.([]any)

		base := rowFromRecord(record)

		for _, l := range labels {
			label := extractName(l)
			if label == "" {
				continue
			}

			row := base
			row.Owner = label
			rows = append(rows, row)
		}
	}

	return rows
}

func relRowsFromRecords(records []*neo4j.Record) []propertyRow {
	var rows []propertyRow

	for _, record := range records {
		relType, _ := record.Get("relType")

		row := rowFromRecord(record)
		row.Owner = extractName(relType)

		if row.Owner == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}

func rowFromRecord(record *neo4j.Record) propertyRow {
	var row propertyRow

	if v, ok := record.Get("propertyName"); ok {
		row.Property, _ = v.(string)
	}

	if v, ok := record.Get("propertyTypes"); ok {
		types, _ := v.([]any)
		for _, t := range types {
			if s, ok := t.(string); ok {
				row.Types = append(row.Types, s)
			}
		}
	}

	if v, ok := record.Get("mandatory"); ok {
		row.Mandatory, _ = v.(bool)
	}

	return row
}

// extractName strips the ":`Name`" decoration Neo4j puts on type names.
func extractName(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}

	s = strings.TrimPrefix(s, ":")
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, "`")

	return s
}

// buildCatalog groups property rows by owner and creates one source each.
// A property seen with conflicting types becomes a string column; a
// property that is optional anywhere becomes nullable.
func buildCatalog(nodeRows, relRows []propertyRow) *graphcat.InMemoryCatalog {
	cat := graphcat.NewInMemoryCatalog()

	for owner, fields := range groupFields(nodeRows) {
		identity := []graphcat.Field{{Name: IDColumn, Type: graphcat.String}}
		cat.WithNodeSource(owner, graphcat.NewSimpleTableSource(graphcat.NewSchema(append(identity, fields...)...)))
	}

	for owner, fields := range groupFields(relRows) {
		identity := []graphcat.Field{
			{Name: SourceIDColumn, Type: graphcat.String},
			{Name: TargetIDColumn, Type: graphcat.String},
		}
		cat.WithRelationshipSource(owner, graphcat.NewSimpleTableSource(graphcat.NewSchema(append(identity, fields...)...)))
	}

	return cat
}

func groupFields(rows []propertyRow) map[string][]graphcat.Field {
	byOwner := make(map[string]map[string]graphcat.Field)

	for _, row := range rows {
		props, ok := byOwner[row.Owner]
		if !ok {
			props = make(map[string]graphcat.Field)
			byOwner[row.Owner] = props
		}

		if row.Property == "" {
			continue
		}

		field := graphcat.Field{
			Name:     row.Property,
			Type:     mapNeo4jType(row.Types),
			Nullable: !row.Mandatory,
		}

		if prev, seen := props[row.Property]; seen {
			if !prev.Type.Equal(field.Type) {
				field.Type = graphcat.String
			}

			field.Nullable = field.Nullable || prev.Nullable
		}

		props[row.Property] = field
	}

	out := make(map[string][]graphcat.Field, len(byOwner))

	for owner, props := range byOwner {
		fields := make([]graphcat.Field, 0, len(props))
		for _, f := range props {
			fields = append(fields, f)
		}

		slices.SortFunc(fields, func(a, b graphcat.Field) int {
			return strings.Compare(a.Name, b.Name)
		})

		out[owner] = fields
	}

	return out
}

// mapNeo4jType maps Neo4j property type names to a column type.
// Mixed types fall back to string.
func mapNeo4jType(types []string) graphcat.DataType {
	if len(types) == 0 {
		return graphcat.String
	}

	first := mapSingleNeo4jType(types[0])
	for _, t := range types[1:] {
		if !mapSingleNeo4jType(t).Equal(first) {
			return graphcat.String
		}
	}

	return first
}

func mapSingleNeo4jType(t string) graphcat.DataType {
	if t == "ByteArray" {
		return graphcat.Binary
	}

	if elem, ok := strings.CutSuffix(t, "Array"); ok {
		return graphcat.ListOf(mapSingleNeo4jType(elem))
	}

	switch t {
	case "Long", "Integer":
		return graphcat.Int64
	case "Double", "Float":
		return graphcat.Float64
	case "Boolean":
		return graphcat.Bool
	case "Date":
		return graphcat.Date
	case "DateTime", "LocalDateTime":
		return graphcat.Timestamp
	default:
		return graphcat.String
	}
}

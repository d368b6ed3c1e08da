package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	exprfile "github.com/expr-lang/expr/file"

	"github.com/rlch/graphcat"
)

// Rule represents a check over resolved mappings.
// Inspired by go/analysis.Analyzer pattern.
type Rule struct {
	// Name is a short identifier for the rule (used in diagnostic codes).
	Name string

	// Doc is a brief description of what the rule checks.
	Doc string

	// Severity is the default severity for diagnostics from this rule.
	Severity DiagnosticSeverity

	// Run executes the rule and appends any diagnostics to the result.
	Run func(a *AnalyzedConfig)
}

// DefaultRules returns all built-in rules.
func DefaultRules() []*Rule {
	return []*Rule{
		// Error-level checks.
		unknownLabelRule,
		unknownRelationshipTypeRule,
		missingColumnRule,
		invalidFilterRule,

		// Warning-level checks.
		unmappedSourceRule,
		emptySourceRule,
	}
}

func (r *Rule) report(a *AnalyzedConfig, kind, subject, message string) {
	a.Diagnostics = append(a.Diagnostics, Diagnostic{
		Severity: r.Severity,
		Code:     r.Name,
		Kind:     kind,
		Subject:  subject,
		Message:  message,
	})
}

// ----------------------------------------------------------------------------
// Rule: unknown-label
// ----------------------------------------------------------------------------

var unknownLabelRule = &Rule{
	Name:     "unknown-label",
	Doc:      "Reports mapped node labels the catalog cannot resolve.",
	Severity: SeverityError,
}

func checkUnknownLabels(a *AnalyzedConfig) {
	for _, n := range a.Nodes {
		if n.Mapping != nil && n.Source == nil {
			unknownLabelRule.report(a, graphcat.KindNode, n.Label, "unknown label '"+n.Label+"'")
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: unknown-relationship-type
// ----------------------------------------------------------------------------

var unknownRelationshipTypeRule = &Rule{
	Name:     "unknown-relationship-type",
	Doc:      "Reports mapped relationship types the catalog cannot resolve.",
	Severity: SeverityError,
}

func checkUnknownRelationshipTypes(a *AnalyzedConfig) {
	for _, r := range a.Relationships {
		if r.Mapping != nil && r.Source == nil {
			unknownRelationshipTypeRule.report(a, graphcat.KindRelationship, r.RelationshipType,
				"unknown relationship type '"+r.RelationshipType+"'")
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: missing-column
// ----------------------------------------------------------------------------

var missingColumnRule = &Rule{
	Name:     "missing-column",
	Doc:      "Reports mapping fields that are not columns of the resolved source.",
	Severity: SeverityError,
}

func checkMissingColumns(a *AnalyzedConfig) {
	check := func(kind, subject string, schema *graphcat.Schema, role, column string) {
		if column == "" || schema.IndexOf(column) >= 0 {
			return
		}

		missingColumnRule.report(a, kind, subject,
			fmt.Sprintf("%s column %q not found in %s", role, column, schema))
	}

	for _, n := range a.Nodes {
		if n.Mapping == nil || n.Source == nil {
			continue
		}

		schema := n.Source.Schema()
		check(graphcat.KindNode, n.Label, schema, "id", n.Mapping.IDField)

		for _, p := range n.Mapping.PropertyFields {
			check(graphcat.KindNode, n.Label, schema, "property", p)
		}
	}

	for _, r := range a.Relationships {
		if r.Mapping == nil || r.Source == nil {
			continue
		}

		schema := r.Source.Schema()
		check(graphcat.KindRelationship, r.RelationshipType, schema, "source id", r.Mapping.SourceIDField)
		check(graphcat.KindRelationship, r.RelationshipType, schema, "target id", r.Mapping.TargetIDField)

		for _, p := range r.Mapping.PropertyFields {
			check(graphcat.KindRelationship, r.RelationshipType, schema, "property", p)
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: invalid-filter
// ----------------------------------------------------------------------------

var invalidFilterRule = &Rule{
	Name:     "invalid-filter",
	Doc:      "Reports mapping filters that do not compile to a boolean over the source columns.",
	Severity: SeverityError,
}

func checkInvalidFilters(a *AnalyzedConfig) {
	for _, n := range a.Nodes {
		if n.Mapping == nil || n.Source == nil {
			continue
		}

		if err := CompileFilter(n.Mapping.Filter, n.Source.Schema()); err != nil {
			invalidFilterRule.report(a, graphcat.KindNode, n.Label, filterMessage(err))
		}
	}

	for _, r := range a.Relationships {
		if r.Mapping == nil || r.Source == nil {
			continue
		}

		if err := CompileFilter(r.Mapping.Filter, r.Source.Schema()); err != nil {
			invalidFilterRule.report(a, graphcat.KindRelationship, r.RelationshipType, filterMessage(err))
		}
	}
}

// CompileFilter type checks a filter expression against a schema.
// An empty filter is valid.
func CompileFilter(filter string, schema *graphcat.Schema) error {
	if strings.TrimSpace(filter) == "" {
		return nil
	}

	_, err := expr.Compile(filter, expr.Env(SchemaEnv(schema)), expr.AsBool())

	return err
}

func filterMessage(err error) string {
	var exprErr *exprfile.Error
	if errors.As(err, &exprErr) {
		return "invalid filter: " + exprErr.Message
	}

	return "invalid filter: " + err.Error()
}

// ----------------------------------------------------------------------------
// Rule: unmapped-source
// ----------------------------------------------------------------------------

var unmappedSourceRule = &Rule{
	Name:     "unmapped-source",
	Doc:      "Reports catalog entries with no mapping from config or catalog.",
	Severity: SeverityWarning,
}

func checkUnmappedSources(a *AnalyzedConfig) {
	for _, n := range a.Nodes {
		if n.Mapping == nil && n.Source != nil {
			unmappedSourceRule.report(a, graphcat.KindNode, n.Label, "label '"+n.Label+"' has a source but no mapping")
		}
	}

	for _, r := range a.Relationships {
		if r.Mapping == nil && r.Source != nil {
			unmappedSourceRule.report(a, graphcat.KindRelationship, r.RelationshipType,
				"relationship type '"+r.RelationshipType+"' has a source but no mapping")
		}
	}
}

// ----------------------------------------------------------------------------
// Rule: empty-source
// ----------------------------------------------------------------------------

var emptySourceRule = &Rule{
	Name:     "empty-source",
	Doc:      "Reports sources whose schema has no columns.",
	Severity: SeverityWarning,
}

func checkEmptySources(a *AnalyzedConfig) {
	for _, n := range a.Nodes {
		if n.Source != nil && n.Source.Schema().Len() == 0 {
			emptySourceRule.report(a, graphcat.KindNode, n.Label, "source for '"+n.Label+"' has no columns")
		}
	}

	for _, r := range a.Relationships {
		if r.Source != nil && r.Source.Schema().Len() == 0 {
			emptySourceRule.report(a, graphcat.KindRelationship, r.RelationshipType,
				"source for '"+r.RelationshipType+"' has no columns")
		}
	}
}

//nolint:gochecknoinits // Run funcs reference their rule; assigning here avoids an initialization cycle.
func init() {
	unknownLabelRule.Run = checkUnknownLabels
	unknownRelationshipTypeRule.Run = checkUnknownRelationshipTypes
	missingColumnRule.Run = checkMissingColumns
	invalidFilterRule.Run = checkInvalidFilters
	unmappedSourceRule.Run = checkUnmappedSources
	emptySourceRule.Run = checkEmptySources
}

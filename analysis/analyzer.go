// Package analysis checks graph mappings against a catalog.
//
// The planner only needs presence or absence from a catalog. This package
// goes further for tooling: it resolves every configured mapping, checks
// that the referenced columns exist and that filters compile, and reports
// the findings as diagnostics.
package analysis

import (
	"slices"

	"github.com/rlch/graphcat"
)

// Origin records where an effective mapping came from.
type Origin string

// Mapping origins.
const (
	OriginNone    Origin = ""
	OriginConfig  Origin = "config"
	OriginCatalog Origin = "catalog"
)

// ResolvedNode is a node label after resolution.
type ResolvedNode struct {
	Label string

	// Source is nil when the catalog does not know the label.
	Source graphcat.TableSource

	// Mapping is nil when neither config nor catalog maps the label.
	Mapping *graphcat.NodeMapping
	Origin  Origin
}

// ResolvedRelationship is a relationship type after resolution.
type ResolvedRelationship struct {
	RelationshipType string

	// Source is nil when the catalog does not know the type.
	Source graphcat.TableSource

	// Mapping is nil when neither config nor catalog maps the type.
	Mapping *graphcat.RelationshipMapping
	Origin  Origin
}

// AnalyzedConfig is the result of analyzing a config against a catalog.
type AnalyzedConfig struct {
	Config  *graphcat.Config
	Catalog graphcat.Catalog

	Nodes         []*ResolvedNode
	Relationships []*ResolvedRelationship

	Diagnostics []Diagnostic
}

// Analyzer runs rules over resolved mappings.
type Analyzer struct {
	rules []*Rule
}

// NewAnalyzer creates an analyzer with the default rules.
func NewAnalyzer() *Analyzer {
	return &Analyzer{rules: DefaultRules()}
}

// NewAnalyzerWithRules creates an analyzer with custom rules.
func NewAnalyzerWithRules(rules []*Rule) *Analyzer {
	return &Analyzer{rules: rules}
}

// Check analyzes cfg against cat with the default rules and returns the
// sorted diagnostics.
func Check(cfg *graphcat.Config, cat graphcat.Catalog) []Diagnostic {
	return NewAnalyzer().Analyze(cfg, cat).Diagnostics
}

// Analyze resolves every label and relationship type named in cfg, plus
// every entry of cat if it can enumerate them, and runs the rules.
//
// Configured mappings take precedence; the catalog is asked for a mapping
// only when the config has none.
func (a *Analyzer) Analyze(cfg *graphcat.Config, cat graphcat.Catalog) *AnalyzedConfig {
	if cfg == nil {
		cfg = &graphcat.Config{}
	}

	result := &AnalyzedConfig{
		Config:      cfg,
		Catalog:     cat,
		Diagnostics: []Diagnostic{},
	}

	labels := make([]string, 0, len(cfg.Nodes))
	for _, m := range cfg.Nodes {
		labels = append(labels, m.Label)
	}

	relTypes := make([]string, 0, len(cfg.Relationships))
	for _, m := range cfg.Relationships {
		relTypes = append(relTypes, m.RelationshipType)
	}

	if lister, ok := cat.(graphcat.SourceLister); ok {
		labels = append(labels, lister.NodeLabels()...)
		relTypes = append(relTypes, lister.RelationshipTypes()...)
	}

	slices.Sort(labels)
	slices.Sort(relTypes)

	for _, label := range slices.Compact(labels) {
		result.Nodes = append(result.Nodes, resolveNode(cfg, cat, label))
	}

	for _, relType := range slices.Compact(relTypes) {
		result.Relationships = append(result.Relationships, resolveRelationship(cfg, cat, relType))
	}

	for _, rule := range a.rules {
		rule.Run(result)
	}

	sortDiagnostics(result.Diagnostics)

	return result
}

func resolveNode(cfg *graphcat.Config, cat graphcat.Catalog, label string) *ResolvedNode {
	n := &ResolvedNode{Label: label}

	if src, ok := cat.NodeSource(label); ok {
		n.Source = src
	}

	if m, ok := cfg.NodeMapping(label); ok {
		n.Mapping, n.Origin = &m, OriginConfig
	} else if m, ok := cat.NodeMapping(label); ok {
		m = m.Clone()
		n.Mapping, n.Origin = &m, OriginCatalog
	}

	return n
}

func resolveRelationship(cfg *graphcat.Config, cat graphcat.Catalog, relType string) *ResolvedRelationship {
	r := &ResolvedRelationship{RelationshipType: relType}

	if src, ok := cat.RelationshipSource(relType); ok {
		r.Source = src
	}

	if m, ok := cfg.RelationshipMapping(relType); ok {
		r.Mapping, r.Origin = &m, OriginConfig
	} else if m, ok := cat.RelationshipMapping(relType); ok {
		m = m.Clone()
		r.Mapping, r.Origin = &m, OriginCatalog
	}

	return r
}

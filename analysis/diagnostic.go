package analysis

import (
	"cmp"
	"slices"
)

// DiagnosticSeverity indicates the severity of a diagnostic.
type DiagnosticSeverity int

const (
	// SeverityError indicates a mapping the planner cannot use.
	SeverityError DiagnosticSeverity = iota + 1

	// SeverityWarning indicates a potential problem.
	SeverityWarning

	// SeverityHint indicates a suggestion.
	SeverityHint
)

// String returns the lower-case name of the severity.
func (s DiagnosticSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding about a label or relationship type.
type Diagnostic struct {
	// Severity indicates error vs warning vs hint.
	Severity DiagnosticSeverity

	// Code identifies the rule that produced the diagnostic (e.g. "unknown-label").
	Code string

	// Kind is graphcat.KindNode or graphcat.KindRelationship.
	Kind string

	// Subject is the label or relationship type.
	Subject string

	// Message is the human readable description.
	Message string
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}

func sortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Severity, b.Severity),
			cmp.Compare(a.Kind, b.Kind),
			cmp.Compare(a.Subject, b.Subject),
			cmp.Compare(a.Code, b.Code),
		)
	})
}

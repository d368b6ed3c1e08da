package graphcat

import "slices"

// NodeMapping describes how a node label maps onto the columns of its source.
type NodeMapping struct {
	// Label is the node label being mapped.
	Label string `yaml:"label" validate:"required"`

	// IDField is the column holding the node identity.
	IDField string `yaml:"id_field" validate:"required"`

	// PropertyFields are the columns exposed as node properties.
	// Empty means all columns are properties.
	PropertyFields []string `yaml:"properties,omitempty" validate:"dive,required"`

	// Filter is an optional row predicate restricting which rows are nodes
	// of this label, e.g. `kind == "person"`.
	Filter string `yaml:"filter,omitempty"`
}

// Clone returns a deep copy of the mapping.
func (m NodeMapping) Clone() NodeMapping {
	m.PropertyFields = slices.Clone(m.PropertyFields)

	return m
}

// RelationshipMapping describes how a relationship type maps onto the
// columns of its source.
type RelationshipMapping struct {
	// RelationshipType is the relationship type being mapped.
	RelationshipType string `yaml:"type" validate:"required"`

	// SourceIDField is the column holding the start node identity.
	SourceIDField string `yaml:"source_id_field" validate:"required"`

	// TargetIDField is the column holding the end node identity.
	TargetIDField string `yaml:"target_id_field" validate:"required"`

	// PropertyFields are the columns exposed as relationship properties.
	PropertyFields []string `yaml:"properties,omitempty" validate:"dive,required"`

	// Filter is an optional row predicate.
	Filter string `yaml:"filter,omitempty"`
}

// Clone returns a deep copy of the mapping.
func (m RelationshipMapping) Clone() RelationshipMapping {
	m.PropertyFields = slices.Clone(m.PropertyFields)

	return m
}

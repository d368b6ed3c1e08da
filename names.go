package graphcat

// Database names.
const (
	DatabaseNeo4j = "neo4j"
)

// Source kinds, used in logs, metrics and diagnostics.
const (
	KindNode                = "node"
	KindRelationship        = "relationship"
	KindNodeMapping         = "node_mapping"
	KindRelationshipMapping = "relationship_mapping"
)

// Resolution outcomes.
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)

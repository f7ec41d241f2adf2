// Package querygraph flattens a parsed supergraph into one directed
// graph of (type, subgraph) nodes connected by typed moves: traverse a
// field, jump to the same entity in another subgraph, or narrow to a
// concrete type.
package querygraph

import "github.com/graphql-hive/query-planner-go/pkg/supergraph"

// Node is one (type, subgraph) pair. Identity is by pointer (reference
// equality); Index mirrors the node's position in the owning Graph's
// arena and is stable for the lifetime of that Graph.
type Node struct {
	Index      int
	SubgraphID string
	TypeName   string
	TypeKind   supergraph.TypeKind
}

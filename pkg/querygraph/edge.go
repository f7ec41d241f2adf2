package querygraph

import "github.com/graphql-hive/query-planner-go/pkg/selection"

// Edge is a typed move from Head to Tail. Requirement is non-nil only
// for entity edges: the selection that must be resolvable at Head
// before the jump to Tail may be taken.
type Edge struct {
	Head        *Node
	Tail        *Node
	Move        Move
	Requirement *selection.Selection
}

// IsEntityMove reports whether this edge is an entity jump.
func (e *Edge) IsEntityMove() bool {
	_, ok := e.Move.(EntityMove)
	return ok
}

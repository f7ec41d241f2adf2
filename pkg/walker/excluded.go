package walker

import (
	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
)

// Excluded propagates into recursive requirement-satisfaction calls so
// the requirement walk cannot trivially re-use the edge it is trying
// to satisfy, and cannot hop back to subgraphs already pinned by the
// outer context. Every With* method returns a fresh value; Excluded
// itself is never mutated in place once constructed.
type Excluded struct {
	graphIDs map[string]bool
	edges    map[*querygraph.Edge]bool
}

// NewExcluded returns the empty exclusion context.
func NewExcluded() *Excluded {
	return &Excluded{
		graphIDs: map[string]bool{},
		edges:    map[*querygraph.Edge]bool{},
	}
}

func (e *Excluded) clone() *Excluded {
	n := &Excluded{
		graphIDs: make(map[string]bool, len(e.graphIDs)+1),
		edges:    make(map[*querygraph.Edge]bool, len(e.edges)+1),
	}
	for k, v := range e.graphIDs {
		n.graphIDs[k] = v
	}
	for k, v := range e.edges {
		n.edges[k] = v
	}
	return n
}

// WithGraph returns a copy with graphID added to the exclusion set.
func (e *Excluded) WithGraph(graphID string) *Excluded {
	n := e.clone()
	n.graphIDs[graphID] = true
	return n
}

// WithEdge returns a copy with edge added to the exclusion set.
func (e *Excluded) WithEdge(edge *querygraph.Edge) *Excluded {
	n := e.clone()
	n.edges[edge] = true
	return n
}

func (e *Excluded) HasGraph(graphID string) bool {
	return e.graphIDs[graphID]
}

func (e *Excluded) HasEdge(edge *querygraph.Edge) bool {
	return e.edges[edge]
}

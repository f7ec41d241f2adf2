// Package queryplan translates a walked OperationPath into the
// executable Fetch/Sequence/Parallel/Flatten tree a gateway runs
// against its subgraphs.
package queryplan

import "github.com/graphql-hive/query-planner-go/pkg/selection"

// Node is the closed set of query plan node kinds, dispatched by type
// switch at print (or execution) time.
type Node interface {
	isNode()
}

// QueryPlan is the synthesizer's output: a single rooted node tree.
type QueryPlan struct {
	Node Node
}

// Fetch issues one GraphQL operation against a single subgraph.
// Requires is non-nil only for entity fetches: the fragment-shaped
// selection the gateway must already hold before calling _entities.
type Fetch struct {
	ServiceName    string
	Requires       *selection.SelectionNode
	VariableUsages []string
	Operation      string
	OperationKind  string
}

func (*Fetch) isNode() {}

// Sequence runs its nodes one after another; later nodes may depend on
// data produced by earlier ones.
type Sequence struct {
	Nodes []Node
}

func (*Sequence) isNode() {}

// Parallel runs its nodes with no ordering dependency between them.
// The synthesizer in this implementation never emits one -- see
// Synthesize's doc comment -- but the node kind is part of the closed
// set so a smarter synthesizer can start producing it without a
// breaking change.
type Parallel struct {
	Nodes []Node
}

func (*Parallel) isNode() {}

// Flatten wraps a Fetch (always an entity fetch) with the response
// path the gateway must merge its result back into. Path elements are
// field names, with "@" marking a list-expansion point.
type Flatten struct {
	Path []string
	Node Node
}

func (*Flatten) isNode() {}

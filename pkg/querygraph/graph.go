package querygraph

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/graphql-hive/query-planner-go/pkg/selection"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
)

// Graph is the merged, immutable query graph for a supergraph. Once
// built it is safe to share read-only across goroutines and may be
// memoized across planning calls.
type Graph struct {
	ID    string
	Nodes []*Node
	Edges []*Edge

	// QueryTypeName, MutationTypeName and SubscriptionTypeName carry the
	// supergraph's root type names forward so the walker can resolve an
	// OperationType to a root type name without needing the Supergraph
	// itself.
	QueryTypeName        string
	MutationTypeName     string
	SubscriptionTypeName string

	byHead         map[int][]*Edge
	byTail         map[int][]*Edge
	byType         map[string][]*Node
	bySubgraphType map[string]map[string]*Node
}

// NewGraph allocates an empty graph arena.
func NewGraph(id string) *Graph {
	return &Graph{
		ID:             id,
		byHead:         make(map[int][]*Edge),
		byTail:         make(map[int][]*Edge),
		byType:         make(map[string][]*Node),
		bySubgraphType: make(map[string]map[string]*Node),
	}
}

// AddNode returns the existing node for (subgraphID, typeName) if one
// was already created, otherwise allocates a fresh one.
func (g *Graph) AddNode(subgraphID, typeName string, kind supergraph.TypeKind) *Node {
	if byType, ok := g.bySubgraphType[subgraphID]; ok {
		if n, ok := byType[typeName]; ok {
			return n
		}
	}
	n := &Node{Index: len(g.Nodes), SubgraphID: subgraphID, TypeName: typeName, TypeKind: kind}
	g.Nodes = append(g.Nodes, n)
	g.byType[typeName] = append(g.byType[typeName], n)
	if g.bySubgraphType[subgraphID] == nil {
		g.bySubgraphType[subgraphID] = make(map[string]*Node)
	}
	g.bySubgraphType[subgraphID][typeName] = n
	return n
}

// AddEdge appends a new edge and indexes it by head and tail.
func (g *Graph) AddEdge(head, tail *Node, move Move, requirement *selection.Selection) *Edge {
	e := &Edge{Head: head, Tail: tail, Move: move, Requirement: requirement}
	g.Edges = append(g.Edges, e)
	g.byHead[head.Index] = append(g.byHead[head.Index], e)
	g.byTail[tail.Index] = append(g.byTail[tail.Index], e)
	return e
}

// EdgesFrom returns every edge whose head is n, in insertion order.
func (g *Graph) EdgesFrom(n *Node) []*Edge {
	return g.byHead[n.Index]
}

// EdgesTo returns every edge whose tail is n, in insertion order.
func (g *Graph) EdgesTo(n *Node) []*Edge {
	return g.byTail[n.Index]
}

// NodesByType returns every node for typeName across all subgraphs,
// in the order they were created.
func (g *Graph) NodesByType(typeName string) []*Node {
	return g.byType[typeName]
}

// NodeFor looks up the node for (subgraphID, typeName), if any.
func (g *Graph) NodeFor(subgraphID, typeName string) (*Node, bool) {
	byType, ok := g.bySubgraphType[subgraphID]
	if !ok {
		return nil, false
	}
	n, ok := byType[typeName]
	return n, ok
}

// RootTypeName maps an operation kind to this graph's root type name
// for it, empty if the supergraph had none (e.g. no Mutation).
func (g *Graph) RootTypeName(operationType supergraph.OperationType) string {
	switch operationType {
	case supergraph.OperationQuery:
		return g.QueryTypeName
	case supergraph.OperationMutation:
		return g.MutationTypeName
	case supergraph.OperationSubscription:
		return g.SubscriptionTypeName
	default:
		return ""
	}
}

// Print renders the graph as Graphviz DOT source. When asLink is true
// the source is wrapped as a URL-encoded edotor.net link for quick
// visual inspection. This is a diagnostic surface only, not part of
// the planner's contract.
func (g *Graph) Print(asLink bool) string {
	var b strings.Builder
	b.WriteString("digraph QueryGraph {\n")
	for _, n := range g.Nodes {
		b.WriteString(fmt.Sprintf("  n%d [label=%q];\n", n.Index, n.SubgraphID+"/"+n.TypeName))
	}
	for _, e := range g.Edges {
		style := ""
		if e.IsEntityMove() {
			style = " [style=dashed]"
		}
		b.WriteString(fmt.Sprintf("  n%d -> n%d [label=%q]%s;\n", e.Head.Index, e.Tail.Index, e.Move.String(), style))
	}
	b.WriteString("}\n")

	if !asLink {
		return b.String()
	}
	return "https://edotor.net/?engine=dot#" + url.QueryEscape(b.String())
}

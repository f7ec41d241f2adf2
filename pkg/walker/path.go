// Package walker explores the query graph for a sequence of field
// steps and returns the cost-minimal OperationPath that realizes them,
// recursively checking that every entity jump's requirement can
// itself be satisfied before the jump is taken.
package walker

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
)

// OperationPath is a sequence of edges from a root node, each
// optionally carrying the resolver sub-paths needed to satisfy its
// requirement. Values are short-lived and copied on extension: Advance
// and Clone never mutate the path they were called on.
type OperationPath struct {
	RootNode              *querygraph.Node
	Edges                 []*querygraph.Edge
	RequiredPathsForEdges [][]*OperationPath
	Cost                  int
}

// NewOperationPath seeds a zero-length path at root.
func NewOperationPath(root *querygraph.Node) *OperationPath {
	return &OperationPath{RootNode: root}
}

// Tail returns the path's current position: the last edge's tail, or
// the root node for an empty path.
func (p *OperationPath) Tail() *querygraph.Node {
	if len(p.Edges) == 0 {
		return p.RootNode
	}
	return p.Edges[len(p.Edges)-1].Tail
}

// Clone returns a copy sharing no mutable backing arrays with p. The
// referenced *Edge and *OperationPath values themselves are immutable
// once built, so sharing those pointers is safe.
func (p *OperationPath) Clone() *OperationPath {
	edges := make([]*querygraph.Edge, len(p.Edges))
	copy(edges, p.Edges)

	required := make([][]*OperationPath, len(p.RequiredPathsForEdges))
	for i, rp := range p.RequiredPathsForEdges {
		if rp == nil {
			continue
		}
		cp := make([]*OperationPath, len(rp))
		copy(cp, rp)
		required[i] = cp
	}

	return &OperationPath{
		RootNode:              p.RootNode,
		Edges:                 edges,
		RequiredPathsForEdges: required,
		Cost:                  p.Cost,
	}
}

// Advance returns a new path with e appended, its base cost folded in,
// and an empty requirement slot reserved for it.
func (p *OperationPath) Advance(e *querygraph.Edge) *OperationPath {
	np := p.Clone()
	np.Edges = append(np.Edges, e)
	np.RequiredPathsForEdges = append(np.RequiredPathsForEdges, nil)
	np.Cost += querygraph.BaseCost(e.Move)
	return np
}

// AddRequiredPaths attaches resolver sub-paths to the edge most
// recently appended by Advance, folding their cost into the total.
// Called only on a path freshly returned by Advance, which this
// package exclusively owns at that point, so mutating in place here
// does not violate the "copied on extension" invariant.
func (p *OperationPath) AddRequiredPaths(paths []*OperationPath) *OperationPath {
	if len(paths) == 0 || len(p.Edges) == 0 {
		return p
	}
	idx := len(p.Edges) - 1
	p.RequiredPathsForEdges[idx] = paths
	for _, rp := range paths {
		p.Cost += rp.Cost
	}
	return p
}

// HasEdge reports whether e already appears on the path (by identity).
func (p *OperationPath) HasEdge(e *querygraph.Edge) bool {
	for _, existing := range p.Edges {
		if existing == e {
			return true
		}
	}
	return false
}

// Print renders the path as Graphviz DOT source, the same diagnostic
// convenience Graph.Print offers for the whole query graph.
func (p *OperationPath) Print(asLink bool) string {
	var b strings.Builder
	b.WriteString("digraph OperationPath {\n")
	b.WriteString(fmt.Sprintf("  n%d [label=%q];\n", p.RootNode.Index, p.RootNode.SubgraphID+"/"+p.RootNode.TypeName))
	prev := p.RootNode
	for _, e := range p.Edges {
		b.WriteString(fmt.Sprintf("  n%d [label=%q];\n", e.Tail.Index, e.Tail.SubgraphID+"/"+e.Tail.TypeName))
		style := ""
		if e.IsEntityMove() {
			style = " [style=dashed]"
		}
		b.WriteString(fmt.Sprintf("  n%d -> n%d [label=%q]%s;\n", prev.Index, e.Tail.Index, e.Move.String(), style))
		prev = e.Tail
	}
	b.WriteString("}\n")

	if !asLink {
		return b.String()
	}
	return "https://edotor.net/?engine=dot#" + url.QueryEscape(b.String())
}

package queryplan

import (
	"fmt"
	"strings"

	"github.com/graphql-hive/query-planner-go/pkg/planner/planerr"
	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
	"github.com/graphql-hive/query-planner-go/pkg/selection"
	"github.com/graphql-hive/query-planner-go/pkg/walker"
)

// defaultedOperationKind falls back to "query" when the caller leaves
// the operation kind blank.
func defaultedOperationKind(kind string) string {
	if kind == "" {
		return "query"
	}
	return kind
}

// segment is one maximal run of same-subgraph FieldMove edges: the
// Query Graph Builder guarantees field edges never cross subgraphs, so
// a segment boundary is exactly every EntityMove edge on the path.
type segment struct {
	subgraphID string
	edges      []*querygraph.Edge
}

// Synthesize turns a terminal OperationPath into a QueryPlan: one root
// Fetch for the path's first same-subgraph run of field edges, and one
// Flatten-wrapped entity Fetch for every subsequent entity jump. The
// current synthesizer never emits Parallel -- every jump is threaded
// into one Sequence, a valid if non-optimal composition; grouping
// independent Flattens under a Parallel is left for a future pass.
func Synthesize(path *walker.OperationPath, operationKind string) (*QueryPlan, error) {
	if len(path.Edges) != len(path.RequiredPathsForEdges) {
		return nil, &planerr.InvariantViolationError{Detail: "edges and requiredPathsForEdges length mismatch"}
	}

	kind := defaultedOperationKind(operationKind)

	segments, entityEdgeIdx := splitSegments(path)

	var nodes []Node

	rootSeg := segments[0]
	rootOp, err := buildFieldChainOperation(kind, rootSeg.edges, requirementFor(path, entityEdgeIdx, 0))
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, &Fetch{
		ServiceName:   rootSeg.subgraphID,
		Operation:     rootOp,
		OperationKind: kind,
	})

	for i := 1; i < len(segments); i++ {
		entityEdge := path.Edges[entityEdgeIdx[i-1]]

		targetField, err := nextFieldMoveName(path.Edges, entityEdgeIdx[i-1])
		if err != nil {
			return nil, err
		}

		flattenPath := buildFlattenPath(path.Edges[:entityEdgeIdx[i-1]+1])

		entityOp := fmt.Sprintf(
			"query($representations:[_Any!]!){_entities(representations:$representations){... on %s{%s}}}",
			entityEdge.Head.TypeName, targetField,
		)

		var requires *selection.SelectionNode
		if entityEdge.Requirement != nil {
			requires = &selection.SelectionNode{
				Kind:         selection.NodeKindFragment,
				TypeName:     entityEdge.Head.TypeName,
				SelectionSet: entityEdge.Requirement.SelectionSet,
			}
		}

		nodes = append(nodes, &Flatten{
			Path: flattenPath,
			Node: &Fetch{
				ServiceName:    entityEdge.Tail.SubgraphID,
				Requires:       requires,
				VariableUsages: []string{"representations"},
				Operation:      entityOp,
				OperationKind:  kind,
			},
		})
	}

	var root Node
	if len(nodes) == 1 {
		root = nodes[0]
	} else {
		root = &Sequence{Nodes: nodes}
	}
	return &QueryPlan{Node: root}, nil
}

// splitSegments groups path.Edges into maximal same-subgraph FieldMove
// runs, returning the segments and, for each boundary, the index into
// path.Edges of the EntityMove edge that caused it.
func splitSegments(path *walker.OperationPath) ([]segment, []int) {
	var segments []segment
	var entityEdgeIdx []int

	cur := segment{subgraphID: path.RootNode.SubgraphID}
	for i, e := range path.Edges {
		if e.IsEntityMove() {
			segments = append(segments, cur)
			entityEdgeIdx = append(entityEdgeIdx, i)
			cur = segment{subgraphID: e.Tail.SubgraphID}
			continue
		}
		cur.edges = append(cur.edges, e)
	}
	segments = append(segments, cur)
	return segments, entityEdgeIdx
}

// requirementFor returns the Selection that must terminate segment
// segIdx's operation string (the key fields a downstream entity jump
// needs), or nil for the final segment.
func requirementFor(path *walker.OperationPath, entityEdgeIdx []int, segIdx int) *selection.Selection {
	if segIdx >= len(entityEdgeIdx) {
		return nil
	}
	return path.Edges[entityEdgeIdx[segIdx]].Requirement
}

// buildFieldChainOperation renders a linear field chain as a GraphQL
// document: "query { a { b { c } } }". When a trailing requirement is
// given, the last field is opened as well and its sub-selection holds
// "__typename" followed by the requirement's fields; intermediate
// positions get no "__typename", and without a trailing requirement
// the last field renders bare.
func buildFieldChainOperation(kind string, edges []*querygraph.Edge, trailing *selection.Selection) (string, error) {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString(" {")

	opened := 0
	for i, e := range edges {
		fm, ok := e.Move.(querygraph.FieldMove)
		if !ok {
			return "", &planerr.InvariantViolationError{Detail: "non-field edge inside a field-chain segment"}
		}
		b.WriteByte(' ')
		b.WriteString(fm.FieldName)
		isLast := i == len(edges)-1
		if !isLast || trailing != nil {
			b.WriteString(" {")
			opened++
		}
	}

	if trailing != nil {
		b.WriteString(" __typename")
		for _, f := range trailing.SelectionSet {
			writeSelectionNode(&b, f)
		}
	}

	for i := 0; i < opened; i++ {
		b.WriteString(" }")
	}
	b.WriteString(" }")
	return b.String(), nil
}

func writeSelectionNode(b *strings.Builder, n selection.SelectionNode) {
	b.WriteByte(' ')
	b.WriteString(n.FieldName)
	if len(n.SelectionSet) > 0 {
		b.WriteString(" {")
		for _, c := range n.SelectionSet {
			writeSelectionNode(b, c)
		}
		b.WriteString(" }")
	}
}

// buildFlattenPath renders the field-name path from root to the head
// of an entity edge, with "@" appended after every list-returning
// field.
func buildFlattenPath(edges []*querygraph.Edge) []string {
	var out []string
	for _, e := range edges {
		fm, ok := e.Move.(querygraph.FieldMove)
		if !ok {
			continue
		}
		out = append(out, fm.FieldName)
		if fm.IsList {
			out = append(out, "@")
		}
	}
	return out
}

// nextFieldMoveName returns the field name of the first FieldMove
// edge strictly after index i, skipping over any chained EntityMove
// edges. Absence is a synthesizer failure: the entity jump exists to
// reach some field, and none was found downstream.
func nextFieldMoveName(edges []*querygraph.Edge, i int) (string, error) {
	for j := i + 1; j < len(edges); j++ {
		if fm, ok := edges[j].Move.(querygraph.FieldMove); ok {
			return fm.FieldName, nil
		}
	}
	return "", &planerr.MissingTargetFieldError{
		TypeName: edges[i].Tail.TypeName,
		Detail:   "no field move follows this entity jump on the path",
	}
}

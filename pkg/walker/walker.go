package walker

import (
	"github.com/graphql-hive/query-planner-go/pkg/planner/planerr"
	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
	"github.com/graphql-hive/query-planner-go/pkg/selection"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
)

// FieldStep is one field hop the returned path must realize, in order.
type FieldStep struct {
	Name string
}

// Walker explores a built Graph for field-step sequences. A Walker is
// read-only over its Graph and safe to share across goroutines.
type Walker struct {
	Graph *querygraph.Graph
}

// New builds a Walker over graph.
func New(graph *querygraph.Graph) *Walker {
	return &Walker{Graph: graph}
}

// Walk returns the minimum-cost path realizing steps from the root
// type for operationType, or (nil, nil) if no such path exists -- "no
// path found" is not an error, per the planner's error taxonomy.
func (w *Walker) Walk(operationType supergraph.OperationType, steps []FieldStep) (*OperationPath, error) {
	rootTypeName := w.Graph.RootTypeName(operationType)
	if rootTypeName == "" {
		return nil, &planerr.UnsupportedConstructError{
			Construct: "operation-type",
			Detail:    "supergraph has no root type for the requested operation",
		}
	}

	paths := make([]*OperationPath, 0)
	for _, root := range w.Graph.NodesByType(rootTypeName) {
		paths = append(paths, NewOperationPath(root))
	}

	for _, step := range steps {
		var next []*OperationPath
		for _, p := range paths {
			direct, err := w.findDirectPaths(p, step, NewExcluded())
			if err != nil {
				return nil, err
			}
			next = append(next, direct...)

			indirect, err := w.findIndirectPaths(p, step, NewExcluded())
			if err != nil {
				return nil, err
			}
			next = append(next, indirect...)
		}
		paths = bestPerTerminalSubgraph(next)
		if len(paths) == 0 {
			return nil, nil
		}
	}

	best := paths[0]
	for _, p := range paths[1:] {
		if p.Cost < best.Cost {
			best = p
		}
	}
	return best, nil
}

// findDirectPaths extends path by every outgoing field edge matching
// step.Name that isn't already on the path and whose requirement (if
// any) can be satisfied from the current position. A path already
// sitting in an excluded subgraph (pinned by the outer requirement
// context) cannot be extended at all.
func (w *Walker) findDirectPaths(path *OperationPath, step FieldStep, excluded *Excluded) ([]*OperationPath, error) {
	if excluded.HasGraph(path.Tail().SubgraphID) {
		return nil, nil
	}

	var out []*OperationPath
	for _, e := range w.Graph.EdgesFrom(path.Tail()) {
		fm, ok := e.Move.(querygraph.FieldMove)
		if !ok || fm.FieldName != step.Name {
			continue
		}
		if path.HasEdge(e) || excluded.HasEdge(e) {
			continue
		}
		ok, subPaths, err := w.canSatisfyEdge(e, path, excluded)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, path.Advance(e).AddRequiredPaths(subPaths))
	}
	return out, nil
}

type frontierEntry struct {
	visitedGraphs map[string]bool
	visitedReqs   []selection.Selection
	path          *OperationPath
}

// findIndirectPaths explores entity-move edges with a LIFO frontier,
// recursively checking each jump's requirement, and tries a direct hit
// for step after every successful jump. Pruning follows six rules in
// order: entity moves only, never jump into a subgraph the outer
// requirement context has pinned as excluded, no revisiting a subgraph
// on this branch, never hopping back to the branch's origin subgraph,
// no reusing a requirement already taken earlier on this branch, and
// the requirement must actually be satisfiable.
func (w *Walker) findIndirectPaths(sourcePath *OperationPath, step FieldStep, excluded *Excluded) ([]*OperationPath, error) {
	if excluded.HasGraph(sourcePath.Tail().SubgraphID) {
		return nil, nil
	}

	originSubgraph := sourcePath.Tail().SubgraphID

	stack := []*frontierEntry{{
		visitedGraphs: map[string]bool{originSubgraph: true},
		path:          sourcePath,
	}}

	var successes []*OperationPath

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range w.Graph.EdgesFrom(entry.path.Tail()) {
			if !e.IsEntityMove() {
				continue
			}
			if excluded.HasGraph(e.Tail.SubgraphID) {
				continue
			}
			if entry.visitedGraphs[e.Tail.SubgraphID] {
				continue
			}
			if e.Tail.SubgraphID == originSubgraph {
				continue
			}
			if e.Requirement != nil && containsSelection(entry.visitedReqs, *e.Requirement) {
				continue
			}

			ok, subPaths, err := w.canSatisfyEdge(e, entry.path, excluded.WithGraph(e.Tail.SubgraphID))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			newPath := entry.path.Advance(e).AddRequiredPaths(subPaths)

			directHits, err := w.findDirectPaths(newPath, step, excluded)
			if err != nil {
				return nil, err
			}
			if len(directHits) > 0 {
				successes = append(successes, directHits...)
				continue
			}

			nextGraphs := make(map[string]bool, len(entry.visitedGraphs)+1)
			for k := range entry.visitedGraphs {
				nextGraphs[k] = true
			}
			nextGraphs[e.Tail.SubgraphID] = true

			nextReqs := entry.visitedReqs
			if e.Requirement != nil {
				nextReqs = append(append([]selection.Selection{}, entry.visitedReqs...), *e.Requirement)
			}

			stack = append(stack, &frontierEntry{
				visitedGraphs: nextGraphs,
				visitedReqs:   nextReqs,
				path:          newPath,
			})
		}
	}

	return bestPerTerminalSubgraph(successes), nil
}

func containsSelection(reqs []selection.Selection, sel selection.Selection) bool {
	for _, r := range reqs {
		if r.Equals(sel) {
			return true
		}
	}
	return false
}

type moveRequirement struct {
	node  selection.SelectionNode
	paths []*OperationPath
}

// canSatisfyEdge returns whether e's requirement (if any) can be
// resolved from path's current position, and every resolver sub-path
// that must be executed before e is taken.
func (w *Walker) canSatisfyEdge(e *querygraph.Edge, path *OperationPath, excluded *Excluded) (bool, []*OperationPath, error) {
	if e.Requirement == nil {
		return true, nil, nil
	}

	innerExcluded := excluded.WithGraph(e.Tail.SubgraphID).WithEdge(e)

	stack := make([]*moveRequirement, 0, len(e.Requirement.SelectionSet))
	for _, node := range e.Requirement.SelectionSet {
		stack = append(stack, &moveRequirement{node: node, paths: []*OperationPath{path.Clone()}})
	}

	var discovered []*OperationPath
	for len(stack) > 0 {
		mr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if mr.node.Kind == selection.NodeKindFragment {
			return false, nil, &planerr.UnsupportedConstructError{
				Construct: "fragment-in-requirement",
				Detail:    "fragment spreads and inline fragments are not supported inside key/requires selections",
			}
		}

		survivors, err := w.validateFieldRequirement(mr.node, mr.paths, innerExcluded)
		if err != nil {
			return false, nil, err
		}
		if len(survivors) == 0 {
			return false, nil, nil
		}

		if len(mr.node.SelectionSet) == 0 {
			discovered = append(discovered, survivors...)
			continue
		}

		for _, child := range mr.node.SelectionSet {
			childPaths := make([]*OperationPath, len(survivors))
			for i, s := range survivors {
				childPaths[i] = s.Clone()
			}
			stack = append(stack, &moveRequirement{node: child, paths: childPaths})
		}
	}

	return true, discovered, nil
}

// validateFieldRequirement runs direct and indirect search for the
// requested field against every candidate path, concatenates the
// survivors, and reduces to one per terminal subgraph.
func (w *Walker) validateFieldRequirement(node selection.SelectionNode, candidates []*OperationPath, excluded *Excluded) ([]*OperationPath, error) {
	step := FieldStep{Name: node.FieldName}
	var all []*OperationPath
	for _, cp := range candidates {
		direct, err := w.findDirectPaths(cp, step, excluded)
		if err != nil {
			return nil, err
		}
		all = append(all, direct...)

		indirect, err := w.findIndirectPaths(cp, step, excluded)
		if err != nil {
			return nil, err
		}
		all = append(all, indirect...)
	}
	return bestPerTerminalSubgraph(all), nil
}

// bestPerTerminalSubgraph reduces paths to the cheapest one per
// terminal subgraph, preserving first-discovered order on ties.
func bestPerTerminalSubgraph(paths []*OperationPath) []*OperationPath {
	best := make(map[string]*OperationPath, len(paths))
	var order []string
	for _, p := range paths {
		key := p.Tail().SubgraphID
		cur, ok := best[key]
		if !ok {
			best[key] = p
			order = append(order, key)
			continue
		}
		if p.Cost < cur.Cost {
			best[key] = p
		}
	}
	out := make([]*OperationPath, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

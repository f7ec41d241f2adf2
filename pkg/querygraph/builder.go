package querygraph

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/graphql-hive/query-planner-go/pkg/selection"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
)

// Build flattens a parsed Supergraph into one merged Graph: one node
// per (type, subgraph), field edges for every non-external field, and
// entity edges joining the same type across subgraphs by @key.
func Build(sg *supergraph.Supergraph) (*Graph, error) {
	graph := NewGraph("supergraph")
	graph.QueryTypeName = sg.QueryTypeName
	graph.MutationTypeName = sg.MutationTypeName
	graph.SubscriptionTypeName = sg.SubscriptionTypeName
	resolvers := make(map[string]*selection.Resolver, len(sg.Subgraphs))

	roots := []string{sg.QueryTypeName, sg.MutationTypeName, sg.SubscriptionTypeName}

	for _, graphID := range sortedSubgraphIDs(sg) {
		sub := sg.Subgraphs[graphID]
		resolvers[graphID] = selection.NewResolver(sub, 0)
		if err := addSubgraphNodes(graph, sub, roots); err != nil {
			return nil, err
		}
	}

	if err := joinByKeys(graph, sg, resolvers); err != nil {
		return nil, err
	}

	return graph, nil
}

func sortedSubgraphIDs(sg *supergraph.Supergraph) []string {
	ids := make([]string, 0, len(sg.Subgraphs))
	for id := range sg.Subgraphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// addSubgraphNodes seeds BFS from the root operation types and every
// entity type this subgraph hosts, then recurses over non-external
// fields until all reachable types have nodes.
func addSubgraphNodes(graph *Graph, sub *supergraph.Subgraph, roots []string) error {
	seen := make(map[string]bool)
	var queue []string

	seed := func(typeName string) {
		if typeName == "" || seen[typeName] {
			return
		}
		if _, ok := sub.Types[typeName]; !ok {
			return
		}
		seen[typeName] = true
		queue = append(queue, typeName)
	}

	var entityNames []string
	for typeName := range sub.EntityTypes {
		entityNames = append(entityNames, typeName)
	}
	sort.Strings(entityNames)

	for _, r := range roots {
		seed(r)
	}
	for _, typeName := range entityNames {
		seed(typeName)
	}

	for len(queue) > 0 {
		typeName := queue[0]
		queue = queue[1:]

		ot, ok := sub.Types[typeName]
		if !ok {
			continue
		}
		head := graph.AddNode(sub.GraphID, typeName, ot.Kind)

		for _, f := range ot.Fields {
			if f.Join.External {
				continue
			}
			targetType := f.Type
			targetKind := supergraph.KindScalar
			if targetOT, ok := sub.Types[targetType]; ok {
				targetKind = targetOT.Kind
			}
			if !seen[targetType] {
				if _, ok := sub.Types[targetType]; ok {
					seen[targetType] = true
					queue = append(queue, targetType)
				}
			}

			tail := graph.AddNode(sub.GraphID, targetType, targetKind)
			graph.AddEdge(head, tail, FieldMove{
				FieldName: f.Name,
				TypeName:  targetType,
				TypeKind:  targetKind,
				IsList:    f.IsList,
			}, nil)
		}
	}
	return nil
}

// joinByKeys adds the all-to-all fan-out of entity edges: for every
// resolvable key K on type T in subgraph G, every other subgraph
// hosting T gets an edge into G carrying resolver_of(G).Resolve(T, K)
// as its requirement. Only Object types participate; interface and
// union keys are silently skipped.
func joinByKeys(graph *Graph, sg *supergraph.Supergraph, resolvers map[string]*selection.Resolver) error {
	processed := make(map[string]bool)

	for _, graphID := range sortedSubgraphIDs(sg) {
		sub := sg.Subgraphs[graphID]
		for _, typeName := range sortedTypeNames(sub) {
			if processed[typeName] {
				continue
			}
			processed[typeName] = true

			ot := sub.Types[typeName]
			if ot.Kind != supergraph.KindObject {
				continue
			}
			if !ot.IsEntity() {
				continue
			}

			for _, jt := range ot.Join {
				if !(jt.Resolvable && jt.HasKey) {
					continue
				}
				tailNode, ok := graph.NodeFor(jt.Graph, typeName)
				if !ok {
					continue
				}
				resolver := resolvers[jt.Graph]
				keySelection, err := resolver.Resolve(typeName, jt.Key)
				if err != nil {
					return errors.Wrapf(err, "resolve key %q on %s/%s", jt.Key, jt.Graph, typeName)
				}

				for _, other := range ot.Join {
					if other.Graph == jt.Graph {
						continue
					}
					headNode, ok := graph.NodeFor(other.Graph, typeName)
					if !ok {
						continue
					}
					graph.AddEdge(headNode, tailNode, EntityMove{}, &keySelection)
				}
			}
		}
	}
	return nil
}

func sortedTypeNames(sub *supergraph.Subgraph) []string {
	names := make([]string, 0, len(sub.Types))
	for name := range sub.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package walker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
	"github.com/graphql-hive/query-planner-go/pkg/selection"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
)

// buildTwoSubgraphGraph wires up:
//
//	accounts: Query.me -> User { id }
//	reviews:  User { id, reviews -> Review { body } }
//
// joined on User by entity edges in both directions keyed on "id",
// so `me { reviews { body } }` must cross subgraphs via an entity jump.
func buildTwoSubgraphGraph(t *testing.T) *querygraph.Graph {
	t.Helper()
	g := querygraph.NewGraph("test")
	g.QueryTypeName = "Query"

	queryAcc := g.AddNode("accounts", "Query", supergraph.KindObject)
	userAcc := g.AddNode("accounts", "User", supergraph.KindObject)
	g.AddEdge(queryAcc, userAcc, querygraph.FieldMove{FieldName: "me", TypeName: "User", TypeKind: supergraph.KindObject}, nil)

	idScalarAcc := g.AddNode("accounts", "ID", supergraph.KindScalar)
	g.AddEdge(userAcc, idScalarAcc, querygraph.FieldMove{FieldName: "id", TypeName: "ID", TypeKind: supergraph.KindScalar}, nil)

	userRev := g.AddNode("reviews", "User", supergraph.KindObject)
	reviewRev := g.AddNode("reviews", "Review", supergraph.KindObject)
	g.AddEdge(userRev, reviewRev, querygraph.FieldMove{FieldName: "reviews", TypeName: "Review", TypeKind: supergraph.KindObject, IsList: true}, nil)

	idSelection := selection.Selection{
		TypeName:        "User",
		KeyFieldsString: "id",
		SelectionSet: []selection.SelectionNode{
			{Kind: selection.NodeKindField, TypeName: "User", FieldName: "id"},
		},
	}
	g.AddEdge(userAcc, userRev, querygraph.EntityMove{}, &idSelection)
	g.AddEdge(userRev, userAcc, querygraph.EntityMove{}, &idSelection)

	return g
}

func TestWalkDirectPath(t *testing.T) {
	g := buildTwoSubgraphGraph(t)
	w := New(g)

	path, err := w.Walk(supergraph.OperationQuery, []FieldStep{{Name: "me"}})
	require.NoError(t, err)
	require.NotNil(t, path)
	require.Len(t, path.Edges, 1)
	require.Equal(t, "accounts", path.Tail().SubgraphID)
	require.Equal(t, "User", path.Tail().TypeName)
	require.Equal(t, 1, path.Cost)
}

func TestWalkIndirectEntityJump(t *testing.T) {
	g := buildTwoSubgraphGraph(t)
	w := New(g)

	path, err := w.Walk(supergraph.OperationQuery, []FieldStep{{Name: "me"}, {Name: "reviews"}})
	require.NoError(t, err)
	require.NotNil(t, path)
	require.Equal(t, "reviews", path.Tail().SubgraphID)
	require.Equal(t, "Review", path.Tail().TypeName)

	var sawEntityMove bool
	for _, e := range path.Edges {
		if e.IsEntityMove() {
			sawEntityMove = true
			require.NotNil(t, e.Requirement)
			require.Equal(t, "User", e.Requirement.TypeName)
		}
	}
	require.True(t, sawEntityMove, "expected an entity jump into the reviews subgraph")
}

func TestWalkNoPathReturnsNilNotError(t *testing.T) {
	g := buildTwoSubgraphGraph(t)
	w := New(g)

	path, err := w.Walk(supergraph.OperationQuery, []FieldStep{{Name: "doesNotExist"}})
	require.NoError(t, err)
	require.Nil(t, path)
}

func TestWalkUnknownOperationType(t *testing.T) {
	g := buildTwoSubgraphGraph(t)
	w := New(g)

	_, err := w.Walk(supergraph.OperationMutation, []FieldStep{{Name: "me"}})
	require.Error(t, err)
}

func TestBestPerTerminalSubgraphKeepsCheapest(t *testing.T) {
	root := &querygraph.Node{Index: 0, SubgraphID: "a", TypeName: "Query"}
	cheap := NewOperationPath(root)
	cheap.Cost = 1
	expensive := NewOperationPath(root)
	expensive.Cost = 5

	out := bestPerTerminalSubgraph([]*OperationPath{expensive, cheap})
	require.Len(t, out, 1)
	require.Equal(t, 1, out[0].Cost)
}

package querygraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphql-hive/query-planner-go/pkg/querygraph"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
)

const builderTestSDL = `
schema {
  query: Query
}

directive @join__graph(name: String!, url: String!) on ENUM_VALUE
directive @join__type(graph: join__Graph!, key: String, extension: Boolean = false, resolvable: Boolean = true, isInterfaceObject: Boolean = false) repeatable on OBJECT | INTERFACE
directive @join__field(graph: join__Graph, requires: String, provides: String, type: String, external: Boolean = false, override: String, usedOverridden: Boolean = false) on FIELD_DEFINITION

enum join__Graph {
  ACCOUNTS @join__graph(name: "accounts", url: "http://accounts")
  REVIEWS @join__graph(name: "reviews", url: "http://reviews")
}

type Query @join__type(graph: ACCOUNTS) @join__type(graph: REVIEWS) {
  me: User @join__field(graph: ACCOUNTS)
}

type User
  @join__type(graph: ACCOUNTS, key: "id")
  @join__type(graph: REVIEWS, key: "id") {
  id: ID!
  username: String @join__field(graph: ACCOUNTS)
  reviews: [Review] @join__field(graph: REVIEWS)
}

type Review @join__type(graph: REVIEWS) {
  id: ID!
  body: String
}
`

func TestBuildMergesSubgraphsAndJoinsEntities(t *testing.T) {
	sg, err := supergraph.Parse(builderTestSDL)
	require.NoError(t, err)

	graph, err := querygraph.Build(sg)
	require.NoError(t, err)

	userAcc, ok := graph.NodeFor("accounts", "User")
	require.True(t, ok)
	userRev, ok := graph.NodeFor("reviews", "User")
	require.True(t, ok)
	require.NotEqual(t, userAcc.Index, userRev.Index)

	var entityEdges []*querygraph.Edge
	for _, e := range graph.Edges {
		if e.IsEntityMove() {
			entityEdges = append(entityEdges, e)
		}
	}
	require.Len(t, entityEdges, 2, "expected one entity edge in each direction between the two User nodes")

	for _, e := range entityEdges {
		require.NotNil(t, e.Requirement)
		require.Equal(t, "User", e.Requirement.TypeName)
		require.True(t, e.Head.TypeName == "User" && e.Tail.TypeName == "User")
	}
}

func TestBuildSkipsExternalFields(t *testing.T) {
	sdl := `
schema { query: Query }
directive @join__graph(name: String!, url: String!) on ENUM_VALUE
directive @join__type(graph: join__Graph!, key: String, extension: Boolean = false, resolvable: Boolean = true, isInterfaceObject: Boolean = false) repeatable on OBJECT | INTERFACE
directive @join__field(graph: join__Graph, requires: String, provides: String, type: String, external: Boolean = false, override: String, usedOverridden: Boolean = false) on FIELD_DEFINITION
enum join__Graph {
  A @join__graph(name: "a", url: "http://a")
  B @join__graph(name: "b", url: "http://b")
}
type Query @join__type(graph: A) {
  thing: Thing @join__field(graph: A)
}
type Thing @join__type(graph: A, key: "id") @join__type(graph: B, key: "id") {
  id: ID!
  name: String @join__field(graph: A, external: true)
}
`
	sg, err := supergraph.Parse(sdl)
	require.NoError(t, err)
	graph, err := querygraph.Build(sg)
	require.NoError(t, err)

	thingA, ok := graph.NodeFor("a", "Thing")
	require.True(t, ok)
	for _, e := range graph.EdgesFrom(thingA) {
		if fm, ok := e.Move.(querygraph.FieldMove); ok {
			require.NotEqual(t, "name", fm.FieldName)
		}
	}
}

func TestRootTypeNameMapsOperationToRootType(t *testing.T) {
	sg, err := supergraph.Parse(builderTestSDL)
	require.NoError(t, err)
	graph, err := querygraph.Build(sg)
	require.NoError(t, err)

	require.Equal(t, "Query", graph.RootTypeName(supergraph.OperationQuery))
	require.Equal(t, "", graph.RootTypeName(supergraph.OperationMutation))
}

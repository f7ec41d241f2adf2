package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphql-hive/query-planner-go/pkg/planner/planerr"
	"github.com/graphql-hive/query-planner-go/pkg/supergraph"
	"github.com/graphql-hive/query-planner-go/pkg/walker"
)

const testSDL = `
schema { query: Query }
directive @join__graph(name: String!, url: String!) on ENUM_VALUE
directive @join__type(graph: join__Graph!, key: String, extension: Boolean = false, resolvable: Boolean = true, isInterfaceObject: Boolean = false) repeatable on OBJECT | INTERFACE
directive @join__field(graph: join__Graph, requires: String, provides: String, type: String, external: Boolean = false, override: String, usedOverridden: Boolean = false) on FIELD_DEFINITION
enum join__Graph {
  ACCOUNTS @join__graph(name: "accounts", url: "http://accounts")
}
type Query @join__type(graph: ACCOUNTS) {
  me: User @join__field(graph: ACCOUNTS)
}
type User @join__type(graph: ACCOUNTS, key: "id") {
  id: ID!
  username: String
}
`

func TestPlannerPlanSingleSubgraph(t *testing.T) {
	p, err := New(testSDL, Configuration{})
	require.NoError(t, err)

	plan, err := p.Plan(supergraph.OperationQuery, []walker.FieldStep{{Name: "me"}})
	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Contains(t, plan.Pretty(), `Fetch(service: "accounts")`)
}

func TestPlannerPlanNoPathFound(t *testing.T) {
	p, err := New(testSDL, Configuration{})
	require.NoError(t, err)

	plan, err := p.Plan(supergraph.OperationQuery, []walker.FieldStep{{Name: "doesNotExist"}})
	require.NoError(t, err)
	require.Nil(t, plan)
}

func TestPlannerRejectsMalformedSupergraph(t *testing.T) {
	_, err := New("schema { query: Query } type Query { hello: String }", Configuration{})
	require.Error(t, err)
}

const s1SDL = `
schema { query: Query }
directive @join__graph(name: String!, url: String!) on ENUM_VALUE
directive @join__type(graph: join__Graph!, key: String, extension: Boolean = false, resolvable: Boolean = true, isInterfaceObject: Boolean = false) repeatable on OBJECT | INTERFACE
directive @join__field(graph: join__Graph, requires: String, provides: String, type: String, external: Boolean = false, override: String, usedOverridden: Boolean = false) on FIELD_DEFINITION
enum join__Graph {
  A @join__graph(name: "a", url: "http://a")
  B @join__graph(name: "b", url: "http://b")
}
type Query @join__type(graph: B) {
  users: [User] @join__field(graph: B)
}
type User
  @join__type(graph: A, key: "id")
  @join__type(graph: B, key: "id") {
  id: ID!
  name: String
  age: Int @join__field(graph: A)
}
`

// TestPlannerPlanEntityJumpAcrossTwoSubgraphs exercises the full
// Parse -> Build -> Walk -> Synthesize pipeline against a real SDL
// string for the single-key basic entity jump shape: B owns the root
// field and the shared key, A owns the leaf field, so the plan must
// fetch from B first and flatten an entity jump into A to pick it up.
func TestPlannerPlanEntityJumpAcrossTwoSubgraphs(t *testing.T) {
	p, err := New(s1SDL, Configuration{})
	require.NoError(t, err)

	plan, err := p.Plan(supergraph.OperationQuery, []walker.FieldStep{{Name: "users"}, {Name: "age"}})
	require.NoError(t, err)
	require.NotNil(t, plan)

	pretty := plan.Pretty()
	require.Contains(t, pretty, `Fetch(service: "b")`)
	require.Contains(t, pretty, "users")
	require.Contains(t, pretty, `Flatten(path: "users.@")`)
	require.Contains(t, pretty, `Fetch(service: "a")`)
	require.Contains(t, pretty, "age")
	require.Contains(t, pretty, "User")
}

func TestPlannerPlanReturnsReportForUnsupportedOperationType(t *testing.T) {
	p, err := New(testSDL, Configuration{})
	require.NoError(t, err)

	plan, err := p.Plan(supergraph.OperationMutation, []walker.FieldStep{{Name: "me"}})
	require.Nil(t, plan)
	require.Error(t, err)

	report, ok := err.(*planerr.Report)
	require.True(t, ok)
	require.True(t, report.HasErrors())
	require.Len(t, report.ExternalErrors, 1)
	require.Empty(t, report.InternalErrors)
}

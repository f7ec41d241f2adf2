package querygraph

import "github.com/graphql-hive/query-planner-go/pkg/supergraph"

// Move is the closed set of edge kinds a query graph traversal can
// take. It is a sum type dispatched by type switch at traversal time;
// no visitor interface is needed for four fixed constructors.
type Move interface {
	isMove()
	String() string
}

// FieldMove traverses a field from the head node's type to the field's
// declared (unwrapped) target type.
type FieldMove struct {
	FieldName string
	TypeName  string
	TypeKind  supergraph.TypeKind
	IsList    bool
}

func (FieldMove) isMove() {}
func (m FieldMove) String() string {
	return "field:" + m.FieldName
}

// EntityMove jumps to the same entity in another subgraph. The
// requirement selection that must be satisfied before the jump lives
// on the Edge, not the Move.
type EntityMove struct{}

func (EntityMove) isMove() {}
func (EntityMove) String() string { return "entity" }

// AbstractMove narrows an interface or union value to a concrete
// object type ("... on X"). Modeled for data-model completeness; the
// walker does not traverse it (it matches only FieldMove and
// EntityMove edges), so no path is found through it.
type AbstractMove struct {
	FromType string
	FromKind supergraph.TypeKind
	ToType   string
	ToKind   supergraph.TypeKind
}

func (AbstractMove) isMove() {}
func (m AbstractMove) String() string {
	return "abstract:" + m.FromType + "->" + m.ToType
}

// InterfaceObjectMove recognizes an @interfaceObject jump: a subgraph
// hosts a concrete type as if it were the interface itself. Modeled
// for completeness; not traversed by the walker in this
// implementation.
type InterfaceObjectMove struct {
	FromType string
	FromKind supergraph.TypeKind
	ToType   string
}

func (InterfaceObjectMove) isMove() {}
func (m InterfaceObjectMove) String() string {
	return "interfaceObject:" + m.FromType + "->" + m.ToType
}

// BaseCost is the per-edge base cost used by the walker's cost
// function: a field hop costs 1, any other move (entity jump,
// abstract narrowing, interface-object jump) costs 10. The cost model
// is intentionally coarse so that single-subgraph solutions win
// whenever one exists.
func BaseCost(m Move) int {
	if _, ok := m.(FieldMove); ok {
		return 1
	}
	return 10
}

package supergraph

// TypeKind is the closed set of GraphQL type-system kinds the planner
// cares about.
type TypeKind uint8

const (
	KindObject TypeKind = iota
	KindInterface
	KindEnum
	KindUnion
	KindInputObject
	KindScalar
)

func (k TypeKind) String() string {
	switch k {
	case KindObject:
		return "OBJECT"
	case KindInterface:
		return "INTERFACE"
	case KindEnum:
		return "ENUM"
	case KindUnion:
		return "UNION"
	case KindInputObject:
		return "INPUT_OBJECT"
	case KindScalar:
		return "SCALAR"
	default:
		return "UNKNOWN"
	}
}

// JoinType is the semantic content of one @join__type directive
// instance on a type definition. A type carries one JoinType per
// subgraph that owns or extends it.
type JoinType struct {
	Graph             string
	Key               string
	HasKey            bool
	Extension         bool
	Resolvable        bool
	IsInterfaceObject bool
}

// JoinField is the semantic content of one @join__field directive
// instance on a field definition.
type JoinField struct {
	Graph          string
	HasGraph       bool
	Requires       string
	Provides       string
	Type           string
	HasType        bool
	External       bool
	Override       string
	HasOverride    bool
	UsedOverridden bool
}

// ObjectTypeField is one field of an ObjectType as seen from a single
// subgraph's table.
type ObjectTypeField struct {
	Name   string
	Type   string // unwrapped named-type string
	IsList bool
	Join   JoinField
}

// ObjectType is a type as it appears in one subgraph's type table.
// Join carries the full cross-subgraph JoinType list (every subgraph
// that owns or extends this type), needed by the Query Graph Builder
// to fan out entity edges; Fields carries only the fields this
// particular subgraph contributes.
type ObjectType struct {
	Name   string
	Kind   TypeKind
	Fields []ObjectTypeField
	Join   []JoinType
}

// IsEntity reports whether this type has at least one resolvable key,
// i.e. can be jumped to across subgraphs.
func (t *ObjectType) IsEntity() bool {
	for _, j := range t.Join {
		if j.Resolvable && j.HasKey {
			return true
		}
	}
	return false
}

// FieldByName looks up a field by name; ok is false if absent.
func (t *ObjectType) FieldByName(name string) (ObjectTypeField, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return t.Fields[i], true
		}
	}
	return ObjectTypeField{}, false
}

// Subgraph is one backend service's view of the supergraph: the types
// it hosts and which of those are entities.
type Subgraph struct {
	GraphID     string
	Types       map[string]*ObjectType
	EntityTypes map[string]struct{}
}

// FieldType implements selection.FieldTypeLookup.
func (s *Subgraph) FieldType(typeName, fieldName string) (string, bool) {
	t, ok := s.Types[typeName]
	if !ok {
		return "", false
	}
	f, ok := t.FieldByName(fieldName)
	if !ok {
		return "", false
	}
	return f.Type, true
}

// Supergraph is the parsed, composed schema: every subgraph keyed by
// its graphId, plus the names of the root operation types.
type Supergraph struct {
	Subgraphs            map[string]*Subgraph
	QueryTypeName        string
	MutationTypeName     string
	SubscriptionTypeName string
}

// RootTypeName maps an operation kind to the supergraph's root type
// name for it, empty if the supergraph has none (e.g. no Mutation).
func (s *Supergraph) RootTypeName(operationType OperationType) string {
	switch operationType {
	case OperationQuery:
		return s.QueryTypeName
	case OperationMutation:
		return s.MutationTypeName
	case OperationSubscription:
		return s.SubscriptionTypeName
	default:
		return ""
	}
}

// OperationType is the client operation's root kind.
type OperationType uint8

const (
	OperationQuery OperationType = iota
	OperationMutation
	OperationSubscription
)

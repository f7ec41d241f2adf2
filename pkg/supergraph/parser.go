// Package supergraph parses a composed federation supergraph SDL
// (a schema annotated with Apollo Federation join-spec directives)
// into per-subgraph type tables. GraphQL lexing/parsing itself is
// delegated to github.com/vektah/gqlparser/v2, per the planner's
// external-interfaces contract -- this package reads exactly the
// directives the planner needs: @join__type, @join__field.
// @join__implements, @join__unionMember and @join__enumValue are
// intentionally not inspected: nothing downstream of the parser
// consumes them yet.
package supergraph

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const joinGraphEnumName = "join__Graph"

// reservedTypeNames are federation/link scaffolding types that never
// participate in the query graph directly.
var reservedTypeNames = map[string]bool{
	"join__Graph":    true,
	"join__FieldSet": true,
	"_Any":           true,
	"_Entity":        true,
	"_Service":       true,
	"link__Import":   true,
	"link__Purpose":  true,
}

// Parse reads a supergraph SDL document and returns its per-subgraph
// type tables. The SDL must declare the join-spec directives and the
// join__Graph enum itself, as real composed supergraphs do.
func Parse(sdl string) (*Supergraph, error) {
	schema, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: "supergraph.graphql", Input: sdl})
	if gqlErr != nil {
		return nil, errors.Wrap(gqlErr, "parse supergraph SDL")
	}

	graphIDs, err := allGraphIDs(schema)
	if err != nil {
		return nil, err
	}

	sg := &Supergraph{Subgraphs: make(map[string]*Subgraph, len(graphIDs))}
	for _, id := range graphIDs {
		sg.Subgraphs[id] = &Subgraph{
			GraphID:     id,
			Types:       make(map[string]*ObjectType),
			EntityTypes: make(map[string]struct{}),
		}
	}

	typeNames := make([]string, 0, len(schema.Types))
	for name := range schema.Types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		def := schema.Types[name]
		if def.BuiltIn || reservedTypeNames[name] || len(name) >= 2 && name[:2] == "__" {
			continue
		}
		if err := parseType(schema, sg, def); err != nil {
			return nil, err
		}
	}

	if schema.Query != nil {
		sg.QueryTypeName = schema.Query.Name
	}
	if schema.Mutation != nil {
		sg.MutationTypeName = schema.Mutation.Name
	}
	if schema.Subscription != nil {
		sg.SubscriptionTypeName = schema.Subscription.Name
	}
	return sg, nil
}

func allGraphIDs(schema *ast.Schema) ([]string, error) {
	joinGraph, ok := schema.Types[joinGraphEnumName]
	if !ok {
		return nil, &MalformedError{Rule: "undefined-type", TypeName: joinGraphEnumName, Detail: "supergraph SDL must define the join__Graph enum"}
	}
	ids := make([]string, 0, len(joinGraph.EnumValues))
	for _, ev := range joinGraph.EnumValues {
		name, err := joinGraphNameArg(ev)
		if err != nil {
			return nil, err
		}
		ids = append(ids, name)
	}
	return ids, nil
}

func joinGraphNameArg(ev *ast.EnumValueDefinition) (string, error) {
	for _, d := range ev.Directives {
		if d.Name != "join__graph" {
			continue
		}
		arg := d.Arguments.ForName("name")
		if arg == nil {
			return "", &MalformedError{Rule: "missing-argument", TypeName: joinGraphEnumName, Directive: "join__graph", Detail: "name is required"}
		}
		if arg.Value.Kind != ast.StringValue {
			return "", &MalformedError{Rule: "wrong-kind", TypeName: joinGraphEnumName, Directive: "join__graph", Detail: "name must be a string"}
		}
		return arg.Value.Raw, nil
	}
	return "", &MalformedError{Rule: "missing-argument", TypeName: joinGraphEnumName, FieldName: ev.Name, Directive: "join__graph", Detail: "enum value has no @join__graph directive"}
}

func parseType(schema *ast.Schema, sg *Supergraph, def *ast.Definition) error {
	kind, err := typeKindOf(def)
	if err != nil {
		return err
	}

	joinTypes, err := parseJoinTypes(schema, def)
	if err != nil {
		return err
	}

	if len(joinTypes) == 0 {
		// Shared/global type (builtin-adjacent scalar, or a type the
		// composition left unannotated): visible identically from
		// every subgraph.
		for _, sub := range sg.Subgraphs {
			if _, dup := sub.Types[def.Name]; dup {
				return &MalformedError{Rule: "duplicate-type", TypeName: def.Name, Detail: fmt.Sprintf("already defined in subgraph %s", sub.GraphID)}
			}
			sub.Types[def.Name] = &ObjectType{Name: def.Name, Kind: kind}
		}
		return nil
	}

	for _, jt := range joinTypes {
		sub, ok := sg.Subgraphs[jt.Graph]
		if !ok {
			return &MalformedError{Rule: "undefined-type", TypeName: def.Name, Directive: "join__type", Detail: fmt.Sprintf("unknown graph %q", jt.Graph)}
		}
		if _, dup := sub.Types[def.Name]; dup {
			return &MalformedError{Rule: "duplicate-type", TypeName: def.Name, Detail: fmt.Sprintf("already defined in subgraph %s", sub.GraphID)}
		}

		fields, err := fieldsForGraph(schema, def, jt.Graph)
		if err != nil {
			return err
		}

		ot := &ObjectType{
			Name:   def.Name,
			Kind:   kind,
			Fields: fields,
			Join:   joinTypes,
		}
		sub.Types[def.Name] = ot
		if ot.IsEntity() {
			sub.EntityTypes[def.Name] = struct{}{}
		}
	}
	return nil
}

func typeKindOf(def *ast.Definition) (TypeKind, error) {
	switch def.Kind {
	case ast.Object:
		return KindObject, nil
	case ast.Interface:
		return KindInterface, nil
	case ast.Enum:
		return KindEnum, nil
	case ast.Union:
		return KindUnion, nil
	case ast.InputObject:
		return KindInputObject, nil
	case ast.Scalar:
		return KindScalar, nil
	default:
		return 0, &MalformedError{Rule: "undefined-type", TypeName: def.Name, Detail: fmt.Sprintf("unsupported definition kind %q", def.Kind)}
	}
}

func parseJoinTypes(schema *ast.Schema, def *ast.Definition) ([]JoinType, error) {
	var out []JoinType
	for _, d := range def.Directives {
		if d.Name != "join__type" {
			continue
		}
		graph, err := requiredGraphArg(schema, d, def.Name, "")
		if err != nil {
			return nil, err
		}
		key, hasKey, err := stringArg(d, "key", def.Name, "")
		if err != nil {
			return nil, err
		}
		extension, err := boolArg(d, "extension", def.Name, "", false)
		if err != nil {
			return nil, err
		}
		resolvable, err := boolArg(d, "resolvable", def.Name, "", true)
		if err != nil {
			return nil, err
		}
		isInterfaceObject, err := boolArg(d, "isInterfaceObject", def.Name, "", false)
		if err != nil {
			return nil, err
		}
		out = append(out, JoinType{
			Graph:             graph,
			Key:               key,
			HasKey:            hasKey,
			Extension:         extension,
			Resolvable:        resolvable,
			IsInterfaceObject: isInterfaceObject,
		})
	}
	return out, nil
}

// fieldsForGraph builds the ObjectTypeField table a single subgraph
// contributes for def, preserving SDL field order. A field belongs to
// graph if it carries an explicit @join__field(graph: <graph>), or
// carries no @join__field directive at all (meaning it is defined
// identically wherever the type's @join__type list says it lives).
func fieldsForGraph(schema *ast.Schema, def *ast.Definition, graph string) ([]ObjectTypeField, error) {
	var out []ObjectTypeField
	for _, f := range def.Fields {
		if len(f.Name) >= 2 && f.Name[:2] == "__" {
			continue
		}
		joinFields, err := parseJoinFields(schema, def.Name, f)
		if err != nil {
			return nil, err
		}

		var chosen *JoinField
		if len(joinFields) == 0 {
			jf := JoinField{Graph: graph, HasGraph: true}
			chosen = &jf
		} else {
			for i := range joinFields {
				if joinFields[i].HasGraph && joinFields[i].Graph == graph {
					chosen = &joinFields[i]
					break
				}
			}
		}
		if chosen == nil {
			continue
		}

		typeName, isList := unwrapType(f.Type)
		if typeName == "" {
			return nil, &MalformedError{Rule: "undefined-type", TypeName: def.Name, FieldName: f.Name, Detail: "field has no named type"}
		}
		if chosen.HasType {
			typeName = chosen.Type
		}

		out = append(out, ObjectTypeField{
			Name:   f.Name,
			Type:   typeName,
			IsList: isList,
			Join:   *chosen,
		})
	}
	return out, nil
}

func parseJoinFields(schema *ast.Schema, typeName string, f *ast.FieldDefinition) ([]JoinField, error) {
	var out []JoinField
	for _, d := range f.Directives {
		if d.Name != "join__field" {
			continue
		}
		graph, hasGraph, err := optionalGraphArg(schema, d, typeName, f.Name)
		if err != nil {
			return nil, err
		}
		requires, _, err := stringArg(d, "requires", typeName, f.Name)
		if err != nil {
			return nil, err
		}
		provides, _, err := stringArg(d, "provides", typeName, f.Name)
		if err != nil {
			return nil, err
		}
		typeOverride, hasType, err := stringArg(d, "type", typeName, f.Name)
		if err != nil {
			return nil, err
		}
		external, err := boolArg(d, "external", typeName, f.Name, false)
		if err != nil {
			return nil, err
		}
		override, hasOverride, err := stringArg(d, "override", typeName, f.Name)
		if err != nil {
			return nil, err
		}
		usedOverridden, err := boolArg(d, "usedOverridden", typeName, f.Name, false)
		if err != nil {
			return nil, err
		}
		out = append(out, JoinField{
			Graph:          graph,
			HasGraph:       hasGraph,
			Requires:       requires,
			Provides:       provides,
			Type:           typeOverride,
			HasType:        hasType,
			External:       external,
			Override:       override,
			HasOverride:    hasOverride,
			UsedOverridden: usedOverridden,
		})
	}
	return out, nil
}

func unwrapType(t *ast.Type) (name string, isList bool) {
	cur := t
	for cur != nil && cur.NamedType == "" && cur.Elem != nil {
		isList = true
		cur = cur.Elem
	}
	if cur == nil {
		return "", isList
	}
	return cur.NamedType, isList
}

package supergraph

import "github.com/vektah/gqlparser/v2/ast"

func requiredGraphArg(schema *ast.Schema, dir *ast.Directive, typeName, fieldName string) (string, error) {
	arg := dir.Arguments.ForName("graph")
	if arg == nil {
		return "", &MalformedError{Rule: "missing-argument", TypeName: typeName, FieldName: fieldName, Directive: dir.Name, Detail: "graph is required"}
	}
	if arg.Value.Kind != ast.EnumValue {
		return "", &MalformedError{Rule: "wrong-kind", TypeName: typeName, FieldName: fieldName, Directive: dir.Name, Detail: "graph must be an enum value"}
	}
	return resolveGraphEnum(schema, arg.Value.Raw, typeName, fieldName, dir.Name)
}

func optionalGraphArg(schema *ast.Schema, dir *ast.Directive, typeName, fieldName string) (string, bool, error) {
	arg := dir.Arguments.ForName("graph")
	if arg == nil {
		return "", false, nil
	}
	if arg.Value.Kind != ast.EnumValue {
		return "", false, &MalformedError{Rule: "wrong-kind", TypeName: typeName, FieldName: fieldName, Directive: dir.Name, Detail: "graph must be an enum value"}
	}
	name, err := resolveGraphEnum(schema, arg.Value.Raw, typeName, fieldName, dir.Name)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// resolveGraphEnum maps a join__Graph enum literal (e.g. PRODUCTS) to
// the friendly graph id declared on its @join__graph(name: "...")
// directive (e.g. "products").
func resolveGraphEnum(schema *ast.Schema, enumValue, typeName, fieldName, directive string) (string, error) {
	joinGraph, ok := schema.Types[joinGraphEnumName]
	if !ok {
		return "", &MalformedError{Rule: "undefined-type", TypeName: joinGraphEnumName, Detail: "supergraph SDL must define the join__Graph enum"}
	}
	for _, ev := range joinGraph.EnumValues {
		if ev.Name != enumValue {
			continue
		}
		return joinGraphNameArg(ev)
	}
	return "", &MalformedError{Rule: "undefined-type", TypeName: typeName, FieldName: fieldName, Directive: directive, Detail: "no join__Graph value named " + enumValue}
}

func stringArg(dir *ast.Directive, name, typeName, fieldName string) (string, bool, error) {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		return "", false, nil
	}
	if arg.Value.Kind != ast.StringValue {
		return "", false, &MalformedError{Rule: "wrong-kind", TypeName: typeName, FieldName: fieldName, Directive: dir.Name, Detail: name + " must be a string"}
	}
	return arg.Value.Raw, true, nil
}

func boolArg(dir *ast.Directive, name, typeName, fieldName string, def bool) (bool, error) {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		return def, nil
	}
	if arg.Value.Kind != ast.BooleanValue {
		return false, &MalformedError{Rule: "wrong-kind", TypeName: typeName, FieldName: fieldName, Directive: dir.Name, Detail: name + " must be a boolean"}
	}
	return arg.Value.Raw == "true", nil
}

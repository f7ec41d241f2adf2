package supergraph

import "fmt"

// MalformedError reports a fatal problem with the supergraph SDL: a
// missing required directive argument, an argument of the wrong
// GraphQL kind, a duplicate type definition, or a reference to an
// undefined type. All are fatal; the parse aborts.
type MalformedError struct {
	Rule      string // "missing-argument" | "wrong-kind" | "duplicate-type" | "undefined-type"
	TypeName  string
	FieldName string
	Directive string
	Detail    string
}

func (e *MalformedError) Error() string {
	where := e.TypeName
	if e.FieldName != "" {
		where = fmt.Sprintf("%s.%s", e.TypeName, e.FieldName)
	}
	if e.Directive != "" {
		return fmt.Sprintf("malformed supergraph: %s on %s (@%s): %s", e.Rule, where, e.Directive, e.Detail)
	}
	return fmt.Sprintf("malformed supergraph: %s on %s: %s", e.Rule, where, e.Detail)
}

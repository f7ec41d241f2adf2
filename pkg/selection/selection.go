// Package selection models canonical GraphQL selection sets used as
// federation keys and entity-jump requirements, and the memoizing
// resolver that turns a raw "id pid" style key-fields string into one.
package selection

import (
	"sort"
	"strings"
)

// NodeKind discriminates the two shapes a SelectionNode can take.
type NodeKind uint8

const (
	NodeKindField NodeKind = iota
	NodeKindFragment
)

// SelectionNode is either a Field (typeName, fieldName, optional nested
// selection set) or a Fragment (typeName, nested selection set). The
// selection Resolver never produces Fragment nodes itself -- fragment
// spreads and inline fragments inside key/requires selections are an
// unsupported construct -- but the shape is kept general so the rest of
// the data model (abstract moves, synthesized operations) can reuse it.
type SelectionNode struct {
	Kind         NodeKind
	TypeName     string
	FieldName    string // set only when Kind == NodeKindField
	SelectionSet []SelectionNode
}

// Selection is a canonically-sorted selection set resolved against a
// particular type, plus the raw string it was parsed from.
type Selection struct {
	TypeName        string
	KeyFieldsString string
	SelectionSet    []SelectionNode
}

// Equals reports whether two Selections are equal: their TypeName
// must match, and either the raw key strings match verbatim (fast
// path) or their canonical trees are structurally equal.
func (s Selection) Equals(other Selection) bool {
	if s.TypeName != other.TypeName {
		return false
	}
	if s.KeyFieldsString != "" && s.KeyFieldsString == other.KeyFieldsString {
		return true
	}
	return selectionSetsEqual(s.SelectionSet, other.SelectionSet)
}

func selectionSetsEqual(a, b []SelectionNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodesEqual(a, b SelectionNode) bool {
	if a.Kind != b.Kind || a.TypeName != b.TypeName || a.FieldName != b.FieldName {
		return false
	}
	return selectionSetsEqual(a.SelectionSet, b.SelectionSet)
}

// sortCanonical applies the canonical sort order: fields before fragments,
// fields ordered by "<typeName>.<fieldName>", fragments by typeName.
func sortCanonical(nodes []SelectionNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Kind != b.Kind {
			return a.Kind == NodeKindField
		}
		if a.Kind == NodeKindField {
			return fieldKey(a) < fieldKey(b)
		}
		return a.TypeName < b.TypeName
	})
	for i := range nodes {
		sortCanonical(nodes[i].SelectionSet)
	}
}

func fieldKey(n SelectionNode) string {
	var b strings.Builder
	b.WriteString(n.TypeName)
	b.WriteByte('.')
	b.WriteString(n.FieldName)
	return b.String()
}

package selection

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// FieldTypeLookup reports the declared (unwrapped) target type name of a
// field on a given type, as seen by one subgraph. Satisfied by
// *supergraph.Subgraph; kept as an interface here so this package does
// not need to import supergraph.
type FieldTypeLookup interface {
	FieldType(typeName, fieldName string) (targetType string, ok bool)
}

const defaultCacheSize = 256

// Resolver memoizes (typeName, keyFieldsString) -> Selection for a
// single subgraph. Caches are scoped to one Subgraph instance and are
// never shared process-wide.
type Resolver struct {
	lookup FieldTypeLookup
	cache  *lru.Cache
}

// NewResolver builds a resolver backed by a bounded LRU memo. Passing a
// non-positive size falls back to defaultCacheSize.
func NewResolver(lookup FieldTypeLookup, cacheSize int) *Resolver {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		// Only non-positive sizes make lru.New fail, and we've just
		// guarded against that.
		panic(err)
	}
	return &Resolver{lookup: lookup, cache: cache}
}

// memoHash collapses (typeName, keyFieldsString) into one fixed-size
// LRU key.
func memoHash(typeName, keyFieldsString string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(typeName)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(keyFieldsString)
	return h.Sum64()
}

// Resolve parses keyFieldsString as a GraphQL selection set on
// typeName and returns its canonical, cached Selection. Fragment
// spreads and inline fragments anywhere in the selection are an
// unsupported construct and produce an error.
func (r *Resolver) Resolve(typeName, keyFieldsString string) (Selection, error) {
	key := memoHash(typeName, keyFieldsString)
	if cached, ok := r.cache.Get(key); ok {
		return cached.(Selection), nil
	}

	nodes, err := r.parseSelectionSet(typeName, keyFieldsString)
	if err != nil {
		return Selection{}, err
	}
	sortCanonical(nodes)

	sel := Selection{
		TypeName:        typeName,
		KeyFieldsString: keyFieldsString,
		SelectionSet:    nodes,
	}
	r.cache.Add(key, sel)
	return sel, nil
}

// parseSelectionSet parses "id pid category { id tag }" style text by
// wrapping it as a fragment on typeName and running it through the
// standalone GraphQL parser (syntax only, no schema validation -- this
// resolver does its own field-type lookups against the owning
// subgraph).
func (r *Resolver) parseSelectionSet(typeName, keyFieldsString string) ([]SelectionNode, error) {
	text := fmt.Sprintf("fragment Key on %s { %s }", typeName, keyFieldsString)
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: text})
	if gqlErr != nil {
		return nil, errors.Wrapf(gqlErr, "parse key/requires selection on %s: %q", typeName, keyFieldsString)
	}
	if len(doc.Fragments) != 1 {
		return nil, errors.Errorf("parse key/requires selection on %s: expected exactly one fragment, got %d", typeName, len(doc.Fragments))
	}
	return r.buildNodes(typeName, doc.Fragments[0].SelectionSet)
}

func (r *Resolver) buildNodes(parentType string, set ast.SelectionSet) ([]SelectionNode, error) {
	nodes := make([]SelectionNode, 0, len(set))
	for _, sel := range set {
		switch v := sel.(type) {
		case *ast.Field:
			targetType, ok := r.lookup.FieldType(parentType, v.Name)
			if !ok {
				return nil, errors.Errorf("key/requires selection references unknown field %s.%s", parentType, v.Name)
			}
			node := SelectionNode{
				Kind:      NodeKindField,
				TypeName:  parentType,
				FieldName: v.Name,
			}
			if len(v.SelectionSet) > 0 {
				children, err := r.buildNodes(targetType, v.SelectionSet)
				if err != nil {
					return nil, err
				}
				node.SelectionSet = children
			}
			nodes = append(nodes, node)
		case *ast.FragmentSpread, *ast.InlineFragment:
			return nil, errors.Errorf("unsupported construct: fragment in key/requires selection on %s", parentType)
		default:
			return nil, errors.Errorf("unsupported construct: unknown selection kind on %s", parentType)
		}
	}
	return nodes, nil
}

package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLookup map[string]map[string]string

func (f fakeLookup) FieldType(typeName, fieldName string) (string, bool) {
	fields, ok := f[typeName]
	if !ok {
		return "", false
	}
	t, ok := fields[fieldName]
	return t, ok
}

func TestResolveIsOrderInvariant(t *testing.T) {
	lookup := fakeLookup{
		"Product": {"id": "ID", "sku": "String", "category": "Category"},
		"Category": {"id": "ID"},
	}
	r := NewResolver(lookup, 0)

	a, err := r.Resolve("Product", "id sku category { id }")
	require.NoError(t, err)

	b, err := r.Resolve("Product", "category { id } sku id")
	require.NoError(t, err)

	require.True(t, a.Equals(b))
}

func TestResolveCachesByKey(t *testing.T) {
	lookup := fakeLookup{"Product": {"id": "ID"}}
	r := NewResolver(lookup, 0)

	a, err := r.Resolve("Product", "id")
	require.NoError(t, err)
	b, err := r.Resolve("Product", "id")
	require.NoError(t, err)

	require.True(t, a.Equals(b))
}

func TestResolveRejectsFragments(t *testing.T) {
	lookup := fakeLookup{"Product": {"id": "ID"}}
	r := NewResolver(lookup, 0)

	_, err := r.Resolve("Product", "... on Product { id }")
	require.Error(t, err)
}

func TestResolveUnknownFieldErrors(t *testing.T) {
	lookup := fakeLookup{"Product": {"id": "ID"}}
	r := NewResolver(lookup, 0)

	_, err := r.Resolve("Product", "nonexistent")
	require.Error(t, err)
}

func TestEqualsRequiresMatchingTypeName(t *testing.T) {
	lookup := fakeLookup{
		"Product": {"id": "ID"},
		"Category": {"id": "ID"},
	}
	r := NewResolver(lookup, 0)

	a, err := r.Resolve("Product", "id")
	require.NoError(t, err)
	b, err := r.Resolve("Category", "id")
	require.NoError(t, err)

	require.False(t, a.Equals(b))
}

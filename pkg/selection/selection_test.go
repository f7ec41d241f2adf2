package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortCanonicalOrdersFieldsBeforeFragmentsAndByKey(t *testing.T) {
	nodes := []SelectionNode{
		{Kind: NodeKindFragment, TypeName: "B"},
		{Kind: NodeKindField, TypeName: "T", FieldName: "z"},
		{Kind: NodeKindFragment, TypeName: "A"},
		{Kind: NodeKindField, TypeName: "T", FieldName: "a"},
	}
	sortCanonical(nodes)

	require.Equal(t, NodeKindField, nodes[0].Kind)
	require.Equal(t, "a", nodes[0].FieldName)
	require.Equal(t, NodeKindField, nodes[1].Kind)
	require.Equal(t, "z", nodes[1].FieldName)
	require.Equal(t, NodeKindFragment, nodes[2].Kind)
	require.Equal(t, "A", nodes[2].TypeName)
	require.Equal(t, NodeKindFragment, nodes[3].Kind)
	require.Equal(t, "B", nodes[3].TypeName)
}

func TestEqualsStructuralFallbackWhenRawStringsDiffer(t *testing.T) {
	a := Selection{
		TypeName:        "Product",
		KeyFieldsString: "id sku",
		SelectionSet: []SelectionNode{
			{Kind: NodeKindField, TypeName: "Product", FieldName: "id"},
			{Kind: NodeKindField, TypeName: "Product", FieldName: "sku"},
		},
	}
	b := Selection{
		TypeName:        "Product",
		KeyFieldsString: "sku id",
		SelectionSet: []SelectionNode{
			{Kind: NodeKindField, TypeName: "Product", FieldName: "id"},
			{Kind: NodeKindField, TypeName: "Product", FieldName: "sku"},
		},
	}
	require.True(t, a.Equals(b))
}

func TestEqualsDetectsStructuralDifference(t *testing.T) {
	a := Selection{
		TypeName: "Product",
		SelectionSet: []SelectionNode{
			{Kind: NodeKindField, TypeName: "Product", FieldName: "id"},
		},
	}
	b := Selection{
		TypeName: "Product",
		SelectionSet: []SelectionNode{
			{Kind: NodeKindField, TypeName: "Product", FieldName: "sku"},
		},
	}
	require.False(t, a.Equals(b))
}

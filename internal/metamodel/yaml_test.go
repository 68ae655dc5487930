package metamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designstore/internal/value"
)

const traitsYAML = `
traits:
  - name: Named
    attributes:
      - { name: name, kind: string, default: "" }
  - name: Rated
    attributes:
      - { name: rate, kind: double, default: 0.0 }
`

const typesYAML = `
types:
  - name: Stock
    structural_kind: node
    traits: [Named]
  - name: Flow
    structural_kind: edge
    traits: [Named, Rated]
`

func TestLoadTraitsYAML(t *testing.T) {
	traits, err := LoadTraitsYAML([]byte(traitsYAML))
	require.NoError(t, err)
	require.Len(t, traits, 2)
	assert.Equal(t, "Named", traits[0].Name)
	assert.Equal(t, value.KindString, traits[0].Attributes[0].Kind)
	require.NotNil(t, traits[0].Attributes[0].Default)
	assert.Equal(t, value.String(""), *traits[0].Attributes[0].Default)
}

func TestLoadObjectTypesYAML(t *testing.T) {
	traits, err := LoadTraitsYAML([]byte(traitsYAML))
	require.NoError(t, err)

	types, err := LoadObjectTypesYAML([]byte(typesYAML), traits)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, Node, types[0].StructuralKind)
	assert.Equal(t, Edge, types[1].StructuralKind)
	assert.True(t, types[1].HasTrait("Rated"))
}

func TestLoadObjectTypesYAMLUnknownTrait(t *testing.T) {
	_, err := LoadObjectTypesYAML([]byte(`types: [{name: X, traits: [Ghost]}]`), nil)
	require.Error(t, err)
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterSchema_SameObjectReturnsSameName(t *testing.T) {
	reg := NewRegistry()
	schema := Mapping{"type": "string"}

	name1 := reg.RegisterSchema(schema, "Pet.yaml", "./Pet.yaml")
	name2 := reg.RegisterSchema(schema, "Pet.yaml", "./Pet.yaml")

	assert.Equal(t, name1, name2)
}

func TestRegistry_RegisterSchema_KnownOriginBindsWithoutNewName(t *testing.T) {
	reg := NewRegistry()
	first := Mapping{"type": "string"}
	reg.RegisterSchema(first, "Pet.yaml", "./Pet.yaml")

	second := Mapping{"type": "object"} // distinct object, same origin
	name := reg.RegisterSchema(second, "Pet.yaml", "./Pet.yaml")

	got, ok := reg.NameFor(second)
	require.True(t, ok)
	assert.Equal(t, "Pet", got)
	assert.Equal(t, "Pet", name)
}

func TestRegistry_RegisterSchema_EquivalentFingerprintReusesName(t *testing.T) {
	reg := NewRegistry()
	a := Mapping{"type": "string"}
	b := Mapping{"type": "string"} // distinct object, equal fingerprint

	nameA := reg.RegisterSchema(a, "Pet.yaml", "./channels/petsA/Pet.yaml")
	nameB := reg.RegisterSchema(b, "Pet.yaml", "./channels/petsB/Pet.yaml")

	assert.Equal(t, nameA, nameB)
	assert.Equal(t, []string{"Pet"}, reg.Names())
}

func TestRegistry_RegisterSchema_DistinctSchemasGetSuffixedNames(t *testing.T) {
	reg := NewRegistry()
	a := Mapping{"type": "string"}
	b := Mapping{"type": "integer"}

	nameA := reg.RegisterSchema(a, "Pet.yaml", "./A/Pet.yaml")
	nameB := reg.RegisterSchema(b, "Pet.yaml", "./B/Pet.yaml")

	assert.Equal(t, "Pet", nameA)
	assert.Equal(t, "Pet_2", nameB)
}

func TestRegistry_NameByOrigin_AmbiguousBasenameFails(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSchema(Mapping{"type": "string"}, "Pet.yaml", "./a/Pet.yaml")
	reg.RegisterSchema(Mapping{"type": "integer"}, "Pet.yaml", "./b/Pet.yaml")

	_, ok := reg.NameByOrigin("Pet.yaml")
	assert.False(t, ok)
}

func TestRegistry_NameByOrigin_UnambiguousBasenameResolves(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSchema(Mapping{"type": "string"}, "Pet.yaml", "./a/Pet.yaml")

	name, ok := reg.NameByOrigin("Pet.yaml")
	require.True(t, ok)
	assert.Equal(t, "Pet", name)
}

func TestRegistry_Rename_RebindsEverything(t *testing.T) {
	reg := NewRegistry()
	schema := Mapping{"type": "string"}
	reg.RegisterSchema(schema, "Pet_2.yaml", "./b/Pet_2.yaml")

	reg.Rename("Pet_2", "Pet")

	name, ok := reg.NameFor(schema)
	require.True(t, ok)
	assert.Equal(t, "Pet", name)

	got, ok := reg.SchemaNamed("Pet")
	require.True(t, ok)
	assert.Equal(t, identity(schema), identity(got))

	originName, ok := reg.NameByOrigin("./b/Pet_2.yaml")
	require.True(t, ok)
	assert.Equal(t, "Pet", originName)
}

func TestRegistry_Preseed_SkipsReferenceObjects(t *testing.T) {
	reg := NewRegistry()
	reg.Preseed("Pet", Mapping{"$ref": "#/components/schemas/Other"}, "")

	_, ok := reg.SchemaNamed("Pet")
	assert.False(t, ok)
}

package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", SchemaRef("Pet"))
}

func TestIsLocalSchemaRef(t *testing.T) {
	assert.True(t, IsLocalSchemaRef("#/components/schemas/Pet"))
	assert.False(t, IsLocalSchemaRef("./Pet.yaml"))
}

func TestSchemaNameFromRef(t *testing.T) {
	name, ok := SchemaNameFromRef("#/components/schemas/Pet")
	assert.True(t, ok)
	assert.Equal(t, "Pet", name)

	_, ok = SchemaNameFromRef("./Pet.yaml")
	assert.False(t, ok)
}

func TestEncodeJSONPointerSegment(t *testing.T) {
	assert.Equal(t, "a~1b", EncodeJSONPointerSegment("a/b"))
	assert.Equal(t, "a~0b", EncodeJSONPointerSegment("a~b"))
}

func TestIsExternalFileValue(t *testing.T) {
	assert.True(t, IsExternalFileValue("./Pet.YAML"))
	assert.True(t, IsExternalFileValue("Pet.json"))
	assert.False(t, IsExternalFileValue("#/components/schemas/Pet"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "channels/pets.yaml", Join("channels", "./pets.yaml"))
	assert.Equal(t, "Owner.yaml", Join("a/b", "../../Owner.yaml"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a/b/c.yaml", Normalize(`a\b/./c.yaml`))
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "Pet.yaml", Basename("./schemas/Pet.yaml"))
}

func TestDirname(t *testing.T) {
	assert.Equal(t, "schemas", Dirname("schemas/Pet.yaml"))
}

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapAt(t *testing.T, node any, path ...string) Mapping {
	t.Helper()
	m, ok := asMapping(node)
	require.True(t, ok, "expected a mapping")
	for _, p := range path {
		m, ok = asMapping(m[p])
		require.True(t, ok, "expected %q to be a mapping", p)
	}
	return m
}

func TestNormalize_Hoisting(t *testing.T) {
	owner := Mapping{
		"type":     "object",
		"x-origin": "./Owner.yaml",
		"properties": Mapping{
			"name": Mapping{"type": "string"},
		},
	}
	pet := Mapping{
		"type":       "object",
		"x-origin":   "./Pet.yaml",
		"properties": Mapping{"owner": owner},
	}
	doc := Mapping{
		"channels": Mapping{
			"pets": Mapping{
				"messages": Mapping{
					"petCreated": Mapping{"payload": pet},
				},
			},
		},
	}

	require.NoError(t, Normalize(doc))

	schemas := mapAt(t, doc, "components", "schemas")
	require.Contains(t, schemas, "Pet")
	require.Contains(t, schemas, "Owner")

	payload := mapAt(t, doc, "channels", "pets", "messages", "petCreated")["payload"]
	assert.Equal(t, Mapping{"$ref": "#/components/schemas/Pet"}, payload)

	petSchema := mapAt(t, doc, "components", "schemas")["Pet"].(Mapping)
	assert.Equal(t, Mapping{"$ref": "#/components/schemas/Owner"}, mapAt(t, petSchema, "properties")["owner"])
}

func TestNormalize_Deduplication(t *testing.T) {
	makePet := func() Mapping {
		return Mapping{
			"type":       "object",
			"x-origin":   "./Pet.yaml",
			"properties": Mapping{"name": Mapping{"type": "string"}},
		}
	}
	doc := Mapping{
		"channels": Mapping{
			"petsA": Mapping{"messages": Mapping{"m": Mapping{"payload": makePet()}}},
			"petsB": Mapping{"messages": Mapping{"m": Mapping{"payload": makePet()}}},
		},
	}

	require.NoError(t, Normalize(doc))

	schemas := mapAt(t, doc, "components", "schemas")
	petCount := 0
	for name := range schemas {
		if name == "Pet" || name == "Pet_2" {
			petCount++
		}
	}
	assert.Equal(t, 1, petCount)
	_, hasSuffixed := schemas["Pet_2"]
	assert.False(t, hasSuffixed)

	payloadA := mapAt(t, doc, "channels", "petsA", "messages", "m")["payload"]
	payloadB := mapAt(t, doc, "channels", "petsB", "messages", "m")["payload"]
	assert.Equal(t, Mapping{"$ref": "#/components/schemas/Pet"}, payloadA)
	assert.Equal(t, payloadA, payloadB)
}

func TestNormalize_ChannelRewrite(t *testing.T) {
	doc := Mapping{
		"channels": Mapping{
			"pets": Mapping{"x-origin": "./channels/pets.yaml", "address": "pets"},
		},
		"operations": Mapping{
			"receivePet": Mapping{
				"channel": Mapping{"$ref": "./channels/pets.yaml"},
			},
		},
	}

	require.NoError(t, Normalize(doc))

	op := mapAt(t, doc, "operations", "receivePet")
	assert.Equal(t, Mapping{"$ref": "#/channels/pets"}, op["channel"])
}

func TestNormalize_DiscriminatorMapping(t *testing.T) {
	doc := Mapping{
		"components": Mapping{
			"schemas": Mapping{
				"Pet":   Mapping{"type": "object", "x-origin": "./Pet.yaml"},
				"Owner": Mapping{"type": "object", "x-origin": "./Owner.yaml"},
				"Animal": Mapping{
					"discriminator": Mapping{
						"propertyName": "kind",
						"mapping":      Mapping{"pet": "./Pet.yaml", "owner": "./Owner.yaml"},
					},
				},
			},
		},
	}

	require.NoError(t, Normalize(doc))

	animal := mapAt(t, doc, "components", "schemas")["Animal"].(Mapping)
	assert.Equal(t, "kind", animal["discriminator"])
	assert.Equal(t, Mapping{
		"pet":   "#/components/schemas/Pet",
		"owner": "#/components/schemas/Owner",
	}, animal["x-discriminator-mapping"])

	for _, v := range mapAt(t, doc, "components", "schemas") {
		schema, ok := asMapping(v)
		if !ok {
			continue
		}
		_, objectShaped := asMapping(schema["discriminator"])
		assert.False(t, objectShaped)
	}
}

func TestNormalize_SchemaContextRefs(t *testing.T) {
	makePet := func() Mapping {
		return Mapping{"type": "object", "x-origin": "./Pet.yaml", "properties": Mapping{"name": Mapping{"type": "string"}}}
	}
	makeOwner := func() Mapping {
		return Mapping{"type": "object", "x-origin": "./Owner.yaml"}
	}

	payload := Mapping{
		"allOf": Sequence{
			makePet(),
			Mapping{"properties": Mapping{"owner": makeOwner()}},
		},
		"anyOf": Sequence{
			makePet(),
			Mapping{"properties": Mapping{"owners": Mapping{"items": makeOwner()}}},
		},
		"properties": Mapping{"pet": makePet()},
	}
	bag := Mapping{"additionalProperties": makePet()}

	doc := Mapping{
		"channels": Mapping{
			"c": Mapping{"messages": Mapping{"m": Mapping{"payload": payload}}},
		},
		"components": Mapping{"schemas": Mapping{"Bag": bag}},
	}

	require.NoError(t, Normalize(doc))

	petRef := Mapping{"$ref": "#/components/schemas/Pet"}
	ownerRef := Mapping{"$ref": "#/components/schemas/Owner"}

	gotPayload := mapAt(t, doc, "channels", "c", "messages", "m")["payload"].(Mapping)
	allOf := gotPayload["allOf"].(Sequence)
	assert.Equal(t, petRef, allOf[0])
	assert.Equal(t, ownerRef, mapAt(t, allOf[1].(Mapping), "properties")["owner"])

	anyOf := gotPayload["anyOf"].(Sequence)
	assert.Equal(t, petRef, anyOf[0])
	owners := mapAt(t, anyOf[1].(Mapping), "properties")["owners"].(Mapping)
	assert.Equal(t, ownerRef, owners["items"])

	assert.Equal(t, petRef, mapAt(t, gotPayload, "properties")["pet"])

	gotBag := mapAt(t, doc, "components", "schemas")["Bag"].(Mapping)
	assert.Equal(t, petRef, gotBag["additionalProperties"])
}

func TestNormalize_Cycle(t *testing.T) {
	node := Mapping{"type": "object"}
	node["properties"] = Mapping{"next": node}

	doc := Mapping{"components": Mapping{"schemas": Mapping{"Node": node}}}

	require.NoError(t, Normalize(doc))

	schemas := mapAt(t, doc, "components", "schemas")
	gotNode := schemas["Node"].(Mapping)
	assert.Equal(t, Mapping{"$ref": "#/components/schemas/Node"}, mapAt(t, gotNode, "properties")["next"])
}

func TestNormalize_NoXOriginSurvives(t *testing.T) {
	pet := Mapping{"type": "object", "x-origin": "./Pet.yaml"}
	doc := Mapping{"channels": Mapping{"c": Mapping{"messages": Mapping{"m": Mapping{"payload": pet}}}}}

	require.NoError(t, Normalize(doc))

	var found bool
	walkAll(doc, make(map[uintptr]bool), func(m Mapping) {
		if _, ok := m["x-origin"]; ok {
			found = true
		}
	})
	assert.False(t, found)
}

func TestNormalize_Idempotent(t *testing.T) {
	owner := Mapping{"type": "object", "x-origin": "./Owner.yaml"}
	pet := Mapping{"type": "object", "x-origin": "./Pet.yaml", "properties": Mapping{"owner": owner}}
	doc := Mapping{"channels": Mapping{"c": Mapping{"messages": Mapping{"m": Mapping{"payload": pet}}}}}

	require.NoError(t, Normalize(doc))

	again, ok := cloneValue(doc, make(map[uintptr]any)).(Mapping)
	require.True(t, ok)

	require.NoError(t, Normalize(again))
	assert.Equal(t, doc, again)
}

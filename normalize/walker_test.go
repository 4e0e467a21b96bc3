package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkDocument_VisitsPayloadNotInExamples(t *testing.T) {
	doc := Mapping{
		"channels": Mapping{
			"pets": Mapping{
				"messages": Mapping{
					"petCreated": Mapping{
						"payload": Mapping{"type": "object"},
						"examples": Sequence{
							Mapping{"payload": Mapping{"name": "literal-example-not-a-schema"}},
						},
					},
				},
			},
		},
	}

	var visited []string
	WalkDocument(doc, func(node Mapping, parent any, key any, path []any) bool {
		if len(path) > 0 {
			if s, ok := path[len(path)-1].(string); ok {
				visited = append(visited, s)
			}
		}
		return false
	})

	assert.Contains(t, visited, "payload")

	// the example's nested "payload" key sits under "examples" and must
	// never be treated as a schema entry point.
	doc2 := Mapping{
		"channels": Mapping{
			"pets": Mapping{
				"messages": Mapping{
					"petCreated": Mapping{
						"examples": Sequence{
							Mapping{"payload": Mapping{"literal": true}},
						},
					},
				},
			},
		},
	}
	var sawExamplePayload bool
	WalkDocument(doc2, func(node Mapping, parent any, key any, path []any) bool {
		sawExamplePayload = true
		return false
	})
	assert.False(t, sawExamplePayload)
}

func TestWalkDocument_ComponentsSchemasFansOutEachEntry(t *testing.T) {
	doc := Mapping{
		"components": Mapping{
			"schemas": Mapping{
				"Pet":   Mapping{"type": "object"},
				"Owner": Mapping{"type": "object"},
			},
		},
	}

	seen := map[string]bool{}
	WalkDocument(doc, func(node Mapping, parent any, key any, path []any) bool {
		if len(path) == 3 {
			if name, ok := path[2].(string); ok {
				seen[name] = true
			}
		}
		return false
	})

	assert.True(t, seen["Pet"])
	assert.True(t, seen["Owner"])
}

func TestWalkSchema_DescendsAllOfAnyOfOneOf(t *testing.T) {
	schema := Mapping{
		"allOf": Sequence{Mapping{"type": "string"}},
		"anyOf": Sequence{Mapping{"type": "integer"}},
		"oneOf": Sequence{Mapping{"type": "boolean"}},
	}

	var types []string
	WalkSchema(schema, nil, nil, nil, func(node Mapping, parent any, key any, path []any) bool {
		if typ, ok := node["type"].(string); ok {
			types = append(types, typ)
		}
		return false
	})

	assert.ElementsMatch(t, []string{"string", "integer", "boolean"}, types)
}

func TestWalkSchema_VisitorSkipPreventsDescent(t *testing.T) {
	schema := Mapping{
		"properties": Mapping{
			"inner": Mapping{"type": "string"},
		},
	}

	count := 0
	WalkSchema(schema, nil, nil, nil, func(node Mapping, parent any, key any, path []any) bool {
		count++
		return true
	})

	assert.Equal(t, 1, count)
}

func TestWalkSchema_CycleTerminates(t *testing.T) {
	node := Mapping{"type": "object"}
	node["properties"] = Mapping{"self": node}

	count := 0
	assert.NotPanics(t, func() {
		WalkSchema(node, nil, nil, nil, func(n Mapping, parent any, key any, path []any) bool {
			count++
			return false
		})
	})
	assert.Equal(t, 1, count)
}

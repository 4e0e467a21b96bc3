package normalize

import "github.com/MiaInturi/bundler/internal/pathutil"

// IsLocalRef reports whether a $ref value already points at a local
// component schema.
func IsLocalRef(ref string) bool {
	return pathutil.IsLocalSchemaRef(ref)
}

// localSchemaRefWith builds a local component reference to name, copying
// description and summary from source if present, since those fields are
// often attached at the use site rather than the schema definition for
// both inline schemas and external $ref objects.
func localSchemaRefWith(name string, source Mapping) Mapping {
	ref := Mapping{"$ref": pathutil.SchemaRef(name)}
	if d, ok := source["description"]; ok {
		ref["description"] = d
	}
	if s, ok := source["summary"]; ok {
		ref["summary"] = s
	}
	return ref
}

// setSlot overwrites parent[key] (a mapping key or sequence index) with
// value.
func setSlot(parent any, key any, value any) {
	switch p := parent.(type) {
	case Mapping:
		if k, ok := key.(string); ok {
			p[k] = value
		}
	case Sequence:
		if i, ok := key.(int); ok && i >= 0 && i < len(p) {
			p[i] = value
		}
	}
}

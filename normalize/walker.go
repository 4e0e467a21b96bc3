package normalize

// SchemaVisitor is invoked for every schema-shaped node the walker visits.
// parent is the enclosing mapping or sequence, key is the string or int
// key under which node was reached, and path is the full path segments
// (strings for mapping keys, ints for sequence indices) from the document
// root to node. Returning true (skip) prevents the walker from descending
// into node's children.
type SchemaVisitor func(node Mapping, parent any, key any, path []any) (skip bool)

// directSchemaKeywords hold a single nested schema value.
var directSchemaKeywords = []string{
	"schema", "payload", "headers", "items", "additionalItems", "contains",
	"additionalProperties", "propertyNames", "if", "then", "else", "not",
	"unevaluatedItems", "unevaluatedProperties",
}

// arrayOfSchemaKeywords hold a sequence of nested schemas.
var arrayOfSchemaKeywords = []string{"allOf", "anyOf", "oneOf", "prefixItems"}

// mapOfSchemaKeywords hold a mapping whose values are nested schemas.
var mapOfSchemaKeywords = []string{"properties", "patternProperties", "definitions", "$defs", "dependentSchemas"}

// appendPath returns a copy of path with segs appended, never aliasing the
// caller's backing array (path segments are retained by visitors).
func appendPath(path []any, segs ...any) []any {
	p := make([]any, len(path)+len(segs))
	copy(p, path)
	copy(p[len(path):], segs)
	return p
}

// pathEquals reports whether path's string segments equal want exactly.
func pathEquals(path []any, want []string) bool {
	if len(path) != len(want) {
		return false
	}
	for i, seg := range path {
		s, ok := seg.(string)
		if !ok || s != want[i] {
			return false
		}
	}
	return true
}

// pathContains reports whether seg appears anywhere among path's string segments.
func pathContains(path []any, seg string) bool {
	for _, p := range path {
		if s, ok := p.(string); ok && s == seg {
			return true
		}
	}
	return false
}

// isSchemaEntryPoint reports whether key k on a mapping reached at path
// (the path to the mapping itself, not including k) is a schema entry
// point per the document walk's rules.
func isSchemaEntryPoint(k string, path []any) bool {
	switch {
	case k == "schema":
		return true
	case k == "schemas" && pathEquals(path, []string{"components"}):
		return true
	case (k == "payload" || k == "headers") && !pathContains(path, "examples"):
		return true
	default:
		return false
	}
}

// WalkDocument descends the document, invoking visit at every schema entry
// point found per isSchemaEntryPoint. It does not itself descend into
// schema contents; each entry point root is handed to WalkSchema.
func WalkDocument(doc any, visit SchemaVisitor) {
	ancestors := make(map[uintptr]bool)
	walkDocumentNode(doc, nil, nil, nil, ancestors, visit)
}

func walkDocumentNode(node any, parent any, key any, path []any, ancestors map[uintptr]bool, visit SchemaVisitor) {
	switch v := node.(type) {
	case Mapping:
		id := identity(v)
		if ancestors[id] {
			return
		}
		ancestors[id] = true
		defer delete(ancestors, id)

		for k, child := range v {
			childPath := appendPath(path, k)
			if !isSchemaEntryPoint(k, path) {
				walkDocumentNode(child, v, k, childPath, ancestors, visit)
				continue
			}
			if k == "schemas" && pathEquals(path, []string{"components"}) {
				if schemas, ok := asMapping(child); ok {
					for name, root := range schemas {
						walkSchema(root, schemas, name, appendPath(childPath, name), ancestors, visit)
					}
				}
				continue
			}
			walkSchema(child, v, k, childPath, ancestors, visit)
		}
	case Sequence:
		for i, child := range v {
			walkDocumentNode(child, v, i, appendPath(path, i), ancestors, visit)
		}
	}
}

// WalkSchema descends a schema-shaped subtree, invoking visit at every
// node (including the root), following the keyword tables above to find
// nested schemas. Malformed nodes (non-mappings where a mapping is
// required) are silently skipped rather than treated as an error.
func WalkSchema(root any, parent any, key any, path []any, visit SchemaVisitor) {
	walkSchema(root, parent, key, path, make(map[uintptr]bool), visit)
}

func walkSchema(node any, parent any, key any, path []any, ancestors map[uintptr]bool, visit SchemaVisitor) {
	m, ok := asMapping(node)
	if !ok {
		return
	}
	id := identity(m)
	if ancestors[id] {
		return
	}
	if visit(m, parent, key, path) {
		return
	}

	ancestors[id] = true
	defer delete(ancestors, id)

	for _, kw := range directSchemaKeywords {
		if child, present := m[kw]; present {
			walkSchema(child, m, kw, appendPath(path, kw), ancestors, visit)
		}
	}
	for _, kw := range arrayOfSchemaKeywords {
		if seq, isSeq := asSequence(m[kw]); isSeq {
			for i, item := range seq {
				walkSchema(item, seq, i, appendPath(path, kw, i), ancestors, visit)
			}
		}
	}
	for _, kw := range mapOfSchemaKeywords {
		if mm, isMap := asMapping(m[kw]); isMap {
			for pk, pv := range mm {
				walkSchema(pv, mm, pk, appendPath(path, kw, pk), ancestors, visit)
			}
		}
	}
	if dm, isMap := asMapping(m["dependencies"]); isMap {
		for pk, pv := range dm {
			switch pv.(type) {
			case Mapping, bool:
				walkSchema(pv, dm, pk, appendPath(path, "dependencies", pk), ancestors, visit)
			}
		}
	}
}


package normalize

import "reflect"

// Mapping is a document mapping node: a mapping from string keys to nodes.
type Mapping = map[string]any

// Sequence is a document sequence node: an ordered list of nodes.
type Sequence = []any

// asMapping returns node as a Mapping if it is shaped like one.
func asMapping(node any) (Mapping, bool) {
	m, ok := node.(Mapping)
	return m, ok
}

// asSequence returns node as a Sequence if it is shaped like one.
func asSequence(node any) (Sequence, bool) {
	s, ok := node.(Sequence)
	return s, ok
}

// asString returns node as a string if it is one.
func asString(node any) (string, bool) {
	s, ok := node.(string)
	return s, ok
}

// identity returns a stable handle for a mapping's underlying storage,
// used to key the registry by object identity rather than structural
// equality. Two Mapping values backed by the same Go map share an
// identity even when reached via different paths in the document.
func identity(m Mapping) uintptr {
	return reflect.ValueOf(m).Pointer()
}

// isRefObject reports whether m is a reference object: a mapping whose
// sole key is "$ref" with a string value.
func isRefObject(m Mapping) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	v, ok := m["$ref"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// isExternalOrigin reports whether an x-origin value refers to an
// external file rather than an internal ("#"-prefixed) pointer.
func isExternalOrigin(origin string) bool {
	return origin != "" && origin[0] != '#'
}

// originOf returns the x-origin string on m, if any.
func originOf(m Mapping) (string, bool) {
	v, ok := m["x-origin"]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

package normalize

import "github.com/MiaInturi/bundler/internal/pathutil"

// Emit rebuilds components.schemas from the union of pre-existing
// reference entries (kept as-is, rewritten if now resolvable) and every
// registered name (root-cloned with nested schema positions replaced by
// local refs).
func Emit(doc any, reg *Registry) {
	root, ok := asMapping(doc)
	if !ok {
		return
	}
	components, ok := asMapping(root["components"])
	if !ok {
		components = Mapping{}
		root["components"] = components
	}
	originalSchemas, _ := asMapping(components["schemas"])

	final := Mapping{}
	for name, value := range originalSchemas {
		schema, ok := asMapping(value)
		if !ok {
			continue
		}
		ref, isRef := isRefObject(schema)
		if !isRef {
			continue
		}
		newRef := ref
		if !IsLocalRef(ref) {
			if resolved, ok := reg.NameByOrigin(ref); ok {
				newRef = pathutil.SchemaRef(resolved)
			}
		}
		final[name] = Mapping{"$ref": newRef}
	}

	c := &cloner{reg: reg, memo: make(map[uintptr]any)}
	for _, name := range reg.AllNames() {
		if _, already := final[name]; already {
			continue
		}
		schema, ok := reg.SchemaNamed(name)
		if !ok {
			continue
		}
		final[name] = c.cloneRoot(schema)
	}

	components["schemas"] = final
}

// StripOrigin removes every x-origin key from doc by a cycle-guarded
// walk. Separated from Emit and run last in the pipeline (see Normalize)
// because the channel-ref rewriter still needs to read x-origin off
// document.channels entries; stripping it any earlier would leave that
// pass nothing to resolve against.
func StripOrigin(doc any) {
	walkAll(doc, make(map[uintptr]bool), func(m Mapping) {
		delete(m, "x-origin")
	})
}

// cloner is a cycle-safe deep copier: a root schema is materialized in
// full; every nested schema-position object registered by identity is
// replaced by a local reference; shared subtrees and cycles are resolved
// by identity-keyed memoization, the memo entry being created before the
// mapping's fields are populated so a self-reference observes (and
// shares) the in-progress clone.
type cloner struct {
	reg  *Registry
	memo map[uintptr]any
}

func (c *cloner) cloneRoot(root Mapping) Mapping {
	out, _ := c.cloneSchemaNode(root, true).(Mapping)
	return out
}

func (c *cloner) cloneSchemaNode(node any, isRoot bool) any {
	m, ok := asMapping(node)
	if !ok {
		return cloneValue(node, c.memo)
	}
	if !isRoot {
		if name, ok := c.reg.NameFor(m); ok {
			return localSchemaRefWith(name, m)
		}
	}

	id := identity(m)
	if existing, ok := c.memo[id]; ok {
		return existing
	}
	out := Mapping{}
	c.memo[id] = out
	for k, v := range m {
		out[k] = c.cloneChildValue(k, v)
	}
	return out
}

func (c *cloner) cloneChildValue(key string, value any) any {
	switch {
	case containsString(directSchemaKeywords, key):
		return c.cloneSchemaNode(value, false)
	case containsString(arrayOfSchemaKeywords, key):
		seq, ok := asSequence(value)
		if !ok {
			return cloneValue(value, c.memo)
		}
		out := make(Sequence, len(seq))
		for i, item := range seq {
			out[i] = c.cloneSchemaNode(item, false)
		}
		return out
	case containsString(mapOfSchemaKeywords, key):
		mm, ok := asMapping(value)
		if !ok {
			return cloneValue(value, c.memo)
		}
		out := Mapping{}
		for k, v := range mm {
			out[k] = c.cloneSchemaNode(v, false)
		}
		return out
	case key == "dependencies":
		dm, ok := asMapping(value)
		if !ok {
			return cloneValue(value, c.memo)
		}
		out := Mapping{}
		for k, v := range dm {
			switch v.(type) {
			case Mapping, bool:
				out[k] = c.cloneSchemaNode(v, false)
			default:
				out[k] = cloneValue(v, c.memo)
			}
		}
		return out
	default:
		return cloneValue(value, c.memo)
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// cloneValue deep-copies a node with no schema-position substitution,
// memoized by identity so shared subtrees and cycles resolve to shared,
// terminating output.
func cloneValue(node any, memo map[uintptr]any) any {
	switch v := node.(type) {
	case Mapping:
		id := identity(v)
		if existing, ok := memo[id]; ok {
			return existing
		}
		out := Mapping{}
		memo[id] = out
		for k, val := range v {
			out[k] = cloneValue(val, memo)
		}
		return out
	case Sequence:
		out := make(Sequence, len(v))
		for i, item := range v {
			out[i] = cloneValue(item, memo)
		}
		return out
	default:
		return v
	}
}

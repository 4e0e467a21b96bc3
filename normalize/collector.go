package normalize

// Collect pre-seeds the registry from document's existing
// components.schemas, then performs a document walk registering every
// inline schema that carries an external x-origin, or that sits at the
// literal components.schemas root.
func Collect(doc any, reg *Registry) {
	root, ok := asMapping(doc)
	if !ok {
		return
	}
	preseedExisting(root, reg)
	WalkDocument(doc, registerVisitor(reg))
}

// registerVisitor is the Collector's visitor, shared with the
// discriminator resolver's on-demand loads (registering a freshly-loaded
// schema file's own external subtrees reuses exactly this logic):
// reference objects are skipped, inline schemas with an external
// x-origin are registered, and an inline schema at the literal
// components.schemas root is registered under its map key.
func registerVisitor(reg *Registry) SchemaVisitor {
	return func(node Mapping, parent any, key any, path []any) bool {
		if _, isRef := isRefObject(node); isRef {
			return true
		}
		if origin, ok := originOf(node); ok && isExternalOrigin(origin) {
			reg.RegisterSchema(node, origin, origin)
			return false
		}
		if name, ok := componentSchemaName(path); ok {
			reg.RegisterSchema(node, name, "")
			return false
		}
		return false
	}
}

// preseedExisting registers every non-reference entry already present
// under components.schemas, in map iteration order (the registry's
// returned Names() only reports newly-registered names, so this ordering
// does not need to be stable - the emitter re-reads
// document.components.schemas only for reference entries and takes every
// other entry from the registry).
func preseedExisting(root Mapping, reg *Registry) {
	components, ok := asMapping(root["components"])
	if !ok {
		return
	}
	schemas, ok := asMapping(components["schemas"])
	if !ok {
		return
	}
	for name, value := range schemas {
		schema, ok := asMapping(value)
		if !ok {
			continue
		}
		if _, isRef := isRefObject(schema); isRef {
			continue
		}
		origin, _ := originOf(schema)
		reg.Preseed(name, schema, origin)
	}
}

// componentSchemaName reports whether path is exactly
// ["components","schemas",<name>], returning <name>.
func componentSchemaName(path []any) (string, bool) {
	if len(path) != 3 {
		return "", false
	}
	a, ok := path[0].(string)
	if !ok || a != "components" {
		return "", false
	}
	b, ok := path[1].(string)
	if !ok || b != "schemas" {
		return "", false
	}
	name, ok := path[2].(string)
	return name, ok
}

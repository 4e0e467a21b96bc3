package normalize

// Rewrite performs a second document walk that replaces every non-root
// occurrence of a registered schema - inline or an external $ref - with
// a local component reference.
func Rewrite(doc any, reg *Registry) {
	WalkDocument(doc, func(node Mapping, parent any, key any, path []any) bool {
		if ref, isRef := isRefObject(node); isRef {
			if IsLocalRef(ref) {
				return true
			}
			if name, ok := reg.NameByOrigin(ref); ok {
				setSlot(parent, key, localSchemaRefWith(name, node))
			}
			return true
		}

		if name, ok := reg.NameFor(node); ok {
			if _, atRoot := componentSchemaName(path); atRoot {
				return false
			}
			setSlot(parent, key, localSchemaRefWith(name, node))
			return true
		}
		return false
	})
}

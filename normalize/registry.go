package normalize

import (
	"fmt"

	"github.com/MiaInturi/bundler/internal/naming"
	"github.com/MiaInturi/bundler/internal/pathutil"
)

// Registry carries the component-registry state of a single Normalize
// invocation: identity tracking across a cyclic, shared-reference
// document graph, fingerprint-based deduplication, and the file-loading
// bookkeeping the discriminator-mapping resolver needs.
type Registry struct {
	objectToName    map[uintptr]string
	nameToSchema    map[string]Mapping
	signatureToName map[string]string
	originToName    map[string]string
	basenameToName  map[string]string
	ambiguous       map[string]bool
	attemptedLoads  map[string]bool
	fileSearchCache map[string][]string

	// order records registration order: pre-existing components.schemas
	// entries added by Preseed are not included, only names added by
	// RegisterSchema.
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		objectToName:    make(map[uintptr]string),
		nameToSchema:    make(map[string]Mapping),
		signatureToName: make(map[string]string),
		originToName:    make(map[string]string),
		basenameToName:  make(map[string]string),
		ambiguous:       make(map[string]bool),
		attemptedLoads:  make(map[string]bool),
		fileSearchCache: make(map[string][]string),
	}
}

// NameFor returns the registered name for schema, if any.
func (r *Registry) NameFor(schema Mapping) (string, bool) {
	name, ok := r.objectToName[identity(schema)]
	return name, ok
}

// SchemaNamed returns the schema registered under name, if any.
func (r *Registry) SchemaNamed(name string) (Mapping, bool) {
	s, ok := r.nameToSchema[name]
	return s, ok
}

// Names returns the newly registered names, in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AllNames returns every currently registered name, including pre-existing
// components.schemas entries, in no particular order.
func (r *Registry) AllNames() []string {
	out := make([]string, 0, len(r.nameToSchema))
	for name := range r.nameToSchema {
		out = append(out, name)
	}
	return out
}

// MarkAttempted records that originPath has been tried for an on-demand
// load, and reports whether it had already been attempted.
func (r *Registry) MarkAttempted(originPath string) (alreadyAttempted bool) {
	if r.attemptedLoads[originPath] {
		return true
	}
	r.attemptedLoads[originPath] = true
	return false
}

// CacheFileSearch stores the result of a directory scan keyed by basename,
// for reuse across discriminator-resolver rounds.
func (r *Registry) CacheFileSearch(basename string, paths []string) {
	r.fileSearchCache[basename] = paths
}

// CachedFileSearch returns a previously cached scan result for basename.
func (r *Registry) CachedFileSearch(basename string) ([]string, bool) {
	paths, ok := r.fileSearchCache[basename]
	return paths, ok
}

// NameByOrigin looks up a name by an exact origin path, a normalized
// origin path, or (if unambiguous) a basename - the three-step resolution
// used throughout the reference rewriter and discriminator resolver.
func (r *Registry) NameByOrigin(value string) (string, bool) {
	if name, ok := r.originToName[value]; ok {
		return name, true
	}
	if name, ok := r.originToName[pathutil.Normalize(value)]; ok {
		return name, true
	}
	base := pathutil.Basename(value)
	if r.ambiguous[base] {
		return "", false
	}
	if name, ok := r.basenameToName[base]; ok {
		return name, true
	}
	return "", false
}

// recordOrigin binds an origin path and its basename to name, marking the
// basename ambiguous if it now resolves to more than one distinct name.
func (r *Registry) recordOrigin(originPath, name string) {
	if originPath == "" {
		return
	}
	r.originToName[originPath] = name
	r.originToName[pathutil.Normalize(originPath)] = name

	base := pathutil.Basename(originPath)
	if existing, ok := r.basenameToName[base]; ok {
		if existing != name {
			r.ambiguous[base] = true
		}
		return
	}
	r.basenameToName[base] = name
}

// RegisterSchema registers schema under a name derived from suggestedName
// (an origin path, $ref, or pre-existing component name), returning the
// name it is (or was already) registered under. Registering the same
// schema object twice (by identity) is a no-op that returns its existing
// name; registering two different schemas under the same suggested name
// picks a disambiguated name for the second.
func (r *Registry) RegisterSchema(schema Mapping, suggestedName string, originPath string) string {
	if name, ok := r.NameFor(schema); ok {
		return name
	}

	if originPath != "" {
		if name, ok := r.originToName[originPath]; ok {
			r.objectToName[identity(schema)] = name
			return name
		}
	}

	safeName := naming.FromSource(suggestedName)
	sig := safeName + "::" + Fingerprint(schema)
	if name, ok := r.signatureToName[sig]; ok {
		r.objectToName[identity(schema)] = name
		r.recordOrigin(originPath, name)
		return name
	}

	name := r.uniqueName(safeName, schema)
	r.objectToName[identity(schema)] = name
	r.nameToSchema[name] = schema
	r.signatureToName[sig] = name
	r.recordOrigin(originPath, name)
	r.order = append(r.order, name)
	return name
}

// Preseed registers a pre-existing components.schemas entry under its map
// key, without consulting the signature map (the name is authoritative,
// not derived). Reference objects are not registered - name→schema never
// contains one.
func (r *Registry) Preseed(name string, schema Mapping, originPath string) {
	if _, isRef := isRefObject(schema); isRef {
		return
	}
	r.objectToName[identity(schema)] = name
	r.nameToSchema[name] = schema
	sig := naming.FromSource(name) + "::" + Fingerprint(schema)
	r.signatureToName[sig] = name
	r.recordOrigin(originPath, name)
}

// uniqueName finds the smallest k>=2 such that safeName_k is unused (or
// already maps to this very schema by identity), starting from safeName
// itself (treated as k=1).
func (r *Registry) uniqueName(safeName string, schema Mapping) string {
	for k := 1; ; k++ {
		candidate := safeName
		if k > 1 {
			candidate = fmt.Sprintf("%s_%d", safeName, k)
		}
		existing, taken := r.nameToSchema[candidate]
		if !taken {
			return candidate
		}
		if identity(existing) == identity(schema) {
			return candidate
		}
	}
}

// Rename rebinds every registry entry pointing at oldName to newName,
// used by the alias consolidator when collapsing an equivalence class to
// its canonical name.
func (r *Registry) Rename(oldName, newName string) {
	if oldName == newName {
		return
	}
	schema, ok := r.nameToSchema[oldName]
	if !ok {
		return
	}
	delete(r.nameToSchema, oldName)
	r.nameToSchema[newName] = schema
	r.objectToName[identity(schema)] = newName

	for k, v := range r.originToName {
		if v == oldName {
			r.originToName[k] = newName
		}
	}
	for k, v := range r.basenameToName {
		if v == oldName {
			r.basenameToName[k] = newName
		}
	}
	for i, n := range r.order {
		if n == oldName {
			r.order[i] = newName
		}
	}
}

// RebuildSignatures recomputes signature→name from scratch, used after
// alias consolidation changes the set of registered names.
func (r *Registry) RebuildSignatures() {
	r.signatureToName = make(map[string]string, len(r.nameToSchema))
	for name, schema := range r.nameToSchema {
		sig := naming.FromSource(name) + "::" + Fingerprint(schema)
		r.signatureToName[sig] = name
	}
}

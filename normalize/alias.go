package normalize

import (
	"regexp"
	"sort"

	"github.com/MiaInturi/bundler/internal/naming"
	"github.com/MiaInturi/bundler/internal/pathutil"
)

var numericSuffix = regexp.MustCompile(`_[0-9]+$`)

// stripNumericSuffix removes a trailing "_<digits>" uniquification suffix
// (added by Registry.uniqueName) so that "Pet" and "Pet_2" group together
// under the Alias Consolidator.
func stripNumericSuffix(name string) string {
	return numericSuffix.ReplaceAllString(name, "")
}

// ConsolidateAliases merges structurally equivalent schemas to a
// fixpoint: schemas sharing a normalized base name and fingerprint are
// collapsed to one canonical name, every reference to a non-canonical
// name is rewritten, and the registry is updated, repeating until no
// further aliases are produced.
func ConsolidateAliases(doc any, reg *Registry) {
	for {
		aliases := buildAliasMap(reg)
		if len(aliases) == 0 {
			return
		}
		applyAliases(doc, aliases)
		for oldName, newName := range aliases {
			reg.Rename(oldName, newName)
		}
		reg.RebuildSignatures()
	}
}

func buildAliasMap(reg *Registry) map[string]string {
	groups := make(map[string][]string)
	for _, name := range reg.AllNames() {
		schema, ok := reg.SchemaNamed(name)
		if !ok {
			continue
		}
		base := stripNumericSuffix(naming.FromSource(name))
		key := base + "::" + Fingerprint(schema)
		groups[key] = append(groups[key], name)
	}

	aliases := make(map[string]string)
	for _, names := range groups {
		if len(names) < 2 {
			continue
		}
		canonical := pickCanonical(names)
		for _, n := range names {
			if n != canonical {
				aliases[n] = canonical
			}
		}
	}
	return aliases
}

// pickCanonical picks the canonical name among a group of equivalent
// aliases: no numeric suffix beats having one, then shorter wins, then
// codepoint-lexicographic order.
func pickCanonical(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aSuffixed := numericSuffix.MatchString(a)
		bSuffixed := numericSuffix.MatchString(b)
		if aSuffixed != bSuffixed {
			return !aSuffixed
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return sorted[0]
}

// applyAliases rewrites every local schema $ref and every
// x-discriminator-mapping value naming a non-canonical alias to its
// canonical name, across the entire document.
func applyAliases(doc any, aliases map[string]string) {
	walkAll(doc, make(map[uintptr]bool), func(m Mapping) {
		if ref, isRef := isRefObject(m); isRef {
			if name, ok := pathutil.SchemaNameFromRef(ref); ok {
				if canonical, aliased := aliases[name]; aliased {
					m["$ref"] = pathutil.SchemaRef(canonical)
				}
			}
			return
		}
		mapping, ok := asMapping(m[DiscriminatorMappingExtensionKey])
		if !ok {
			return
		}
		for key, value := range mapping {
			s, ok := value.(string)
			if !ok {
				continue
			}
			name, ok := pathutil.SchemaNameFromRef(s)
			if !ok {
				continue
			}
			if canonical, aliased := aliases[name]; aliased {
				mapping[key] = pathutil.SchemaRef(canonical)
			}
		}
	})
}

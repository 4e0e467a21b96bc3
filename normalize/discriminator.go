package normalize

import (
	"strings"

	"github.com/MiaInturi/bundler/internal/fileutil"
	"github.com/MiaInturi/bundler/internal/pathutil"
)

// DiscriminatorMappingExtensionKey is where object-form discriminator
// mappings are relocated once the discriminator itself collapses to its
// propertyName string.
const DiscriminatorMappingExtensionKey = "x-discriminator-mapping"

// ResolveDiscriminatorMappings repeatedly sweeps every registered
// schema's discriminator.mapping and x-discriminator-mapping entries,
// rewriting file-shaped values to local component refs and loading
// additional schema files on demand, until a sweep changes nothing.
func ResolveDiscriminatorMappings(reg *Registry, cfg *Config) error {
	for {
		changed := false
		for _, name := range reg.AllNames() {
			schema, ok := reg.SchemaNamed(name)
			if !ok {
				continue
			}
			c, err := resolveSchemaMappings(schema, reg, cfg)
			if err != nil {
				return err
			}
			changed = changed || c
		}
		if !changed {
			return nil
		}
	}
}

func resolveSchemaMappings(schema Mapping, reg *Registry, cfg *Config) (bool, error) {
	changed := false
	if disc, ok := asMapping(schema["discriminator"]); ok {
		if m, ok := asMapping(disc["mapping"]); ok {
			c, err := resolveMappingEntries(m, schema, reg, cfg)
			if err != nil {
				return changed, err
			}
			changed = changed || c
		}
	}
	if m, ok := asMapping(schema[DiscriminatorMappingExtensionKey]); ok {
		c, err := resolveMappingEntries(m, schema, reg, cfg)
		if err != nil {
			return changed, err
		}
		changed = changed || c
	}
	return changed, nil
}

func resolveMappingEntries(mapping Mapping, schema Mapping, reg *Registry, cfg *Config) (bool, error) {
	changed := false
	for key, value := range mapping {
		s, ok := value.(string)
		if !ok || IsLocalRef(s) || !pathutil.IsExternalFileValue(s) {
			continue
		}
		name, err := resolveDiscriminatorTarget(s, schema, reg, cfg)
		if err != nil {
			return changed, err
		}
		if name != "" {
			mapping[key] = pathutil.SchemaRef(name)
			changed = true
		}
	}
	return changed, nil
}

// resolveDiscriminatorTarget resolves a single mapping value: resolve by
// known origin, else by path candidates on disk, else by a cached
// directory scan; load and register on a fresh hit; return the resolved
// component name, or "" if still unresolved (a soft failure - the
// mapping value is left untouched by the caller).
func resolveDiscriminatorTarget(mappingValue string, schema Mapping, reg *Registry, cfg *Config) (string, error) {
	if name, ok := reg.NameByOrigin(mappingValue); ok {
		return name, nil
	}

	schemaOrigin, _ := originOf(schema)

	var candidates []string
	if schemaOrigin != "" && isExternalOrigin(schemaOrigin) {
		candidates = append(candidates, pathutil.Join(pathutil.Dirname(schemaOrigin), mappingValue))
	}
	candidates = append(candidates, pathutil.Normalize(mappingValue), pathutil.Basename(mappingValue))

	resolvedPath := ""
	for _, candidate := range candidates {
		if fileutil.Exists(resolveAgainst(cfg.workingDir, candidate)) {
			resolvedPath = candidate
			break
		}
	}

	if resolvedPath == "" {
		found, ok, err := resolveViaScan(cfg, reg, mappingValue, schemaOrigin)
		if err != nil {
			return "", err
		}
		if !ok {
			cfg.logger.Debug("discriminator mapping value left unresolved", "value", mappingValue, "schemaOrigin", schemaOrigin)
			return "", nil
		}
		resolvedPath = found
	}

	if !reg.MarkAttempted(resolvedPath) {
		if err := loadAndRegister(resolvedPath, reg, cfg); err != nil {
			return "", err
		}
		cfg.logger.Debug("loaded discriminator mapping target on demand", "path", resolvedPath)
	}

	name, _ := reg.NameByOrigin(resolvedPath)
	return name, nil
}

func resolveAgainst(workingDir, candidate string) string {
	if workingDir == "" {
		return candidate
	}
	return pathutil.Join(workingDir, candidate)
}

// resolveViaScan is the last-resort directory-scan fallback for a
// mapping value that doesn't resolve by exact or normalized path,
// caching results by basename across the whole resolver run.
func resolveViaScan(cfg *Config, reg *Registry, mappingValue, schemaOrigin string) (string, bool, error) {
	basename := pathutil.Basename(mappingValue)
	paths, cached := reg.CachedFileSearch(basename)
	if !cached {
		scanRoot := cfg.workingDir
		if scanRoot == "" {
			scanRoot = "."
		}
		all, err := fileutil.Scan(scanRoot, cfg.excludedDirs)
		if err != nil {
			return "", false, wrapScan(scanRoot, err)
		}
		for base, found := range all {
			reg.CacheFileSearch(base, found)
		}
		paths, _ = reg.CachedFileSearch(basename)
	}

	if len(paths) == 1 {
		return paths[0], true, nil
	}
	if len(paths) > 1 && schemaOrigin != "" {
		originDir := pathutil.Basename(pathutil.Dirname(schemaOrigin))
		var matches []string
		for _, p := range paths {
			if strings.Contains(p, originDir) {
				matches = append(matches, p)
			}
		}
		if len(matches) == 1 {
			return matches[0], true, nil
		}
	}
	return "", false, nil
}

// loadAndRegister loads resolvedPath, dereferences it against its own
// directory, tags its root with resolvedPath, registers it, and registers
// every externally-originated schema subtree within it.
func loadAndRegister(resolvedPath string, reg *Registry, cfg *Config) error {
	loaded, err := fileutil.Load(resolveAgainst(cfg.workingDir, resolvedPath))
	if err != nil {
		return wrapLoad(resolvedPath, err)
	}

	dereferenceDir := resolveAgainst(cfg.workingDir, pathutil.Dirname(resolvedPath))
	if err := fileutil.WithWorkingDir(dereferenceDir, func() error {
		return cfg.dereferencer.Dereference(dereferenceDir, loaded)
	}); err != nil {
		return wrapLoad(resolvedPath, err)
	}

	root, ok := asMapping(loaded)
	if !ok {
		return nil
	}
	root["x-origin"] = resolvedPath
	reg.RegisterSchema(root, resolvedPath, resolvedPath)
	WalkSchema(root, nil, nil, nil, registerVisitor(reg))
	return nil
}

// NormalizeDiscriminators walks every schema node in the document,
// nested or not, collapsing object-form discriminators to their
// propertyName string (or removing them if none was given), with their
// mapping merged into the extension key.
func NormalizeDiscriminators(doc any) {
	WalkDocument(doc, func(node Mapping, parent any, key any, path []any) bool {
		if _, isRef := isRefObject(node); isRef {
			return true
		}
		normalizeDiscriminator(node)
		return false
	})
}

// normalizeDiscriminator merges an object-form discriminator's mapping
// into the extension key. The object-mapping's keys win over pre-existing
// extension-key entries on collision; this preserves existing behavior
// rather than imposing a different merge policy.
func normalizeDiscriminator(schema Mapping) {
	disc, ok := asMapping(schema["discriminator"])
	if !ok {
		return
	}

	if objMapping, ok := asMapping(disc["mapping"]); ok {
		ext, ok := asMapping(schema[DiscriminatorMappingExtensionKey])
		if !ok {
			ext = Mapping{}
		}
		for k, v := range objMapping {
			ext[k] = v
		}
		schema[DiscriminatorMappingExtensionKey] = ext
	}

	if propertyName, ok := asString(disc["propertyName"]); ok && propertyName != "" {
		schema["discriminator"] = propertyName
		return
	}
	delete(schema, "discriminator")
}

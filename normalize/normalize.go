// Package normalize implements the post-bundle AsyncAPI normalization
// pass: schema hoisting, fingerprint-based deduplication, discriminator
// mapping resolution, channel-reference rewriting, and x-origin cleanup.
//
// The document is represented the way a generic YAML/JSON decode
// produces it - nested map[string]any / []any / scalars - since the
// input graph may alias and may contain cycles that a typed struct model
// cannot represent without its own identity bookkeeping.
//
// Normalize runs the seven passes in order, followed by StripOrigin:
//
//  1. Collect     - register every schema-shaped object by identity
//  2. Rewrite     - replace non-root occurrences with local refs
//  3. ResolveDiscriminatorMappings - rewrite mapping file values, loading on demand
//  4. NormalizeDiscriminators      - collapse object-form discriminators
//  5. ConsolidateAliases - merge equivalent schemas to one canonical name
//  6. Emit        - rebuild components.schemas
//  7. RewriteChannelRefs - rewrite operation channel.$ref values
//  8. StripOrigin - remove all x-origin bookkeeping (run last, since the
//     channel rewriter above still needs to read it)
package normalize

// Normalize mutates doc in place, applying the full seven-pass pipeline.
// The only error path is a hard failure in the discriminator-mapping
// resolver: a file it loads on demand cannot be read, parsed, or
// dereferenced (or does not decode to a mapping or sequence), or its
// directory scan fails. Every unresolved reference is left untouched,
// silently.
func Normalize(doc any, opts ...Option) error {
	cfg := newConfig(opts...)
	reg := NewRegistry()

	Collect(doc, reg)
	Rewrite(doc, reg)

	if err := ResolveDiscriminatorMappings(reg, cfg); err != nil {
		return err
	}
	NormalizeDiscriminators(doc)

	ConsolidateAliases(doc, reg)
	Emit(doc, reg)
	RewriteChannelRefs(doc)
	StripOrigin(doc)

	return nil
}

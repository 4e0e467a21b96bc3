// Package normalize hoists inlined AsyncAPI schemas into components,
// deduplicates equivalent schemas, rewrites discriminator mappings and
// channel references to local pointers, and strips the x-origin
// bookkeeping an upstream bundler leaves behind.
//
// The input document is the generic tree produced by decoding YAML or
// JSON into `any`: a mapping is a map[string]any, a sequence is a []any,
// and a scalar is a string, float64, bool, or nil. The same mapping value
// may be reachable from more than one position in the tree (the upstream
// resolver produces a DAG, not a pure tree), and cycles are permitted.
//
// Normalize runs seven passes over the document, in order:
//
//  1. Collector - registers every schema-shaped object by identity.
//  2. Reference rewriter - replaces non-root occurrences with local refs.
//  3. Discriminator-mapping resolver - rewrites file-shaped mapping values,
//     loading additional files on demand.
//  4. Discriminator normalizer - collapses object-form discriminators.
//  5. Alias consolidator - merges equivalent schemas to one canonical name.
//  6. Emitter - rebuilds components.schemas with a cycle-safe clone.
//  7. Channel-ref rewriter - rewrites operation channel.$ref values.
package normalize

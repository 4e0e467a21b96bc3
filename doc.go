// Package bundler provides a post-processing normalization pass for
// already-bundled AsyncAPI documents.
//
// An upstream collaborator (not part of this module) resolves a document's
// external $ref values, inlines the referenced content, and tags every
// inlined schema or channel with an x-origin attribute recording the file
// it came from. This package takes that annotated, in-memory document and
// rewrites it so every inlined schema is hoisted under
// #/components/schemas/<Name>, equivalent schemas are consolidated under
// one canonical name, discriminator mappings and channel $refs point at
// local components, and the x-origin bookkeeping is removed.
//
// # Overview
//
// The engine lives in the normalize package:
//
//   - normalize: schema hoisting, deduplication, discriminator-mapping
//     resolution, alias consolidation, and the channel-ref rewriter.
//
// # Quick Start
//
//	import "github.com/MiaInturi/bundler/normalize"
//
//	doc := map[string]any{ /* already-bundled AsyncAPI document */ }
//	if err := normalize.Normalize(doc); err != nil {
//		log.Fatal(err)
//	}
//	// doc now has every inlined schema hoisted under components.schemas
//
// # Command-Line Interface
//
// In addition to the library package, bundler provides a command-line
// interface:
//
//	# normalize a bundled document, writing the result to stdout
//	bundler normalize bundled.yaml
//
// Install the CLI:
//
//	go install github.com/MiaInturi/bundler/cmd/bundler@latest
//
// # Non-goals
//
// This package does not validate AsyncAPI semantics, does not round-trip
// comments or source key ordering, and does not resolve references that
// cross authorities (only local filesystem paths are followed).
package bundler

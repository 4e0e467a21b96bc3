// Package pathutil builds local component/channel references and performs
// POSIX-style path normalization for resolving origin paths and
// discriminator-mapping file values.
package pathutil

import "strings"

// Local reference prefixes used by the normalizer's emitted document.
const (
	SchemaPrefix           = "#/components/schemas/"
	ChannelPrefix          = "#/channels/"
	ComponentChannelPrefix = "#/components/channels/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return SchemaPrefix + name
}

// IsLocalSchemaRef reports whether ref is already a local component
// schema reference.
func IsLocalSchemaRef(ref string) bool {
	return strings.HasPrefix(ref, SchemaPrefix)
}

// SchemaNameFromRef extracts the component name from a local schema ref.
// Returns "" and false if ref is not a local schema ref.
func SchemaNameFromRef(ref string) (string, bool) {
	if !IsLocalSchemaRef(ref) {
		return "", false
	}
	return strings.TrimPrefix(ref, SchemaPrefix), true
}

// ChannelRef builds "#/channels/{pointer}" for a JSON-pointer-escaped
// channel name.
func ChannelRef(pointer string) string {
	return ChannelPrefix + pointer
}

// ComponentChannelRef builds "#/components/channels/{pointer}".
func ComponentChannelRef(pointer string) string {
	return ComponentChannelPrefix + pointer
}

// EncodeJSONPointerSegment escapes a channel name for use as a JSON
// pointer segment: '~' becomes "~0" and '/' becomes "~1", in that order.
func EncodeJSONPointerSegment(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return name
}

// IsExternalFileValue reports whether a discriminator mapping value looks
// like a file reference by extension (case-insensitive .yaml/.yml/.json),
// as opposed to an already-local component pointer or an opaque string.
func IsExternalFileValue(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

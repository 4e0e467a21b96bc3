// Package naming derives component names from origin paths, $ref strings,
// or pre-existing component names.
package naming

import (
	"path"
	"strings"
)

// safeCharReplacement is substituted for any rune outside [A-Za-z0-9_.-].
const safeCharReplacement = '_'

// FromSource derives a component name from an origin path, a $ref string,
// or a pre-existing component name: strip the directory and extension,
// replace any character outside [A-Za-z0-9_.-] with '_', trim leading and
// trailing '_', '-', and '.', substitute "Schema" if the result is empty,
// and prefix "Schema_" if the first character is a digit.
func FromSource(source string) string {
	base := path.Base(strings.ReplaceAll(source, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	var sb strings.Builder
	sb.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune(safeCharReplacement)
		}
	}

	name := strings.Trim(sb.String(), "_-.")
	if name == "" {
		name = "Schema"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "Schema_" + name
	}
	return name
}

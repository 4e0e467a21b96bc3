package pathutil

import (
	"path"
	"strings"
)

// toSlash converts OS-specific separators to '/' without touching the
// rest of the path, so callers on any platform get POSIX semantics.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// Normalize cleans p using POSIX path semantics, regardless of host OS.
func Normalize(p string) string {
	return path.Clean(toSlash(p))
}

// Join joins dir and rel using POSIX path semantics and cleans the
// result, so a discriminator-mapping file value resolves relative to its
// schema's origin directory the same way on every host OS.
func Join(dir, rel string) string {
	return path.Clean(path.Join(toSlash(dir), toSlash(rel)))
}

// Dirname returns the directory portion of p under POSIX semantics.
func Dirname(p string) string {
	return path.Dir(toSlash(p))
}

// Basename returns the final path segment of p under POSIX semantics.
func Basename(p string) string {
	return path.Base(toSlash(p))
}

// Package fileutil provides the filesystem primitives the discriminator
// mapping resolver needs for on-demand schema loading: decoding a
// candidate file, scoped working-directory changes, and a cached
// directory scan.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.yaml.in/yaml/v4"
)

// OwnerReadWrite is the file permission mode for output files containing
// potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for generated source files
// intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// excludedDirs are directory names Scan never descends into: dependency
// and build-output trees that would otherwise dominate a basename scan.
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"lib":          true,
}

// ExcludedDirs returns the default set of directory names Scan ignores.
func ExcludedDirs() map[string]bool {
	out := make(map[string]bool, len(excludedDirs))
	for k, v := range excludedDirs {
		out[k] = v
	}
	return out
}

// Exists reports whether path names a regular file on disk, relative to
// the process's current working directory.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads path and decodes it as YAML or JSON (JSON is valid YAML, so
// one decoder handles both) into the generic node tree. An error is
// returned if the file cannot be read or parsed, or if the decoded root
// is not a mapping or sequence, since the caller treats an on-demand load
// failure as fatal to the whole normalization pass rather than something
// to silently skip.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fileutil: reading %s: %w", path, err)
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("fileutil: parsing %s: %w", path, err)
	}
	switch node.(type) {
	case map[string]any, []any:
		return node, nil
	default:
		return nil, fmt.Errorf("fileutil: %s does not decode to a mapping or sequence", path)
	}
}

// cwdMu serializes WithWorkingDir calls within the process.
var cwdMu sync.Mutex

// WithWorkingDir temporarily changes the process working directory to
// dir for the duration of fn, restoring the prior directory on every exit
// path (including a panic or error from fn). This mirrors the upstream
// dereferencer's requirement that relative $ref values resolve against
// the directory of the file currently being processed.
//
// The process working directory is a process-global resource. Concurrent
// WithWorkingDir calls are serialized by cwdMu, but any other code that
// depends on the working directory (including the rest of a concurrent
// Normalize call) still observes dir while fn runs; callers running more
// than one Normalize concurrently must coordinate that themselves.
func WithWorkingDir(dir string, fn func() error) error {
	if dir == "" {
		return fn()
	}
	cwdMu.Lock()
	defer cwdMu.Unlock()

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("fileutil: getting working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("fileutil: changing to %s: %w", dir, err)
	}
	defer func() { _ = os.Chdir(prev) }()

	return fn()
}

// Scan walks root (excluding the names in excluded, or the package
// default ExcludedDirs if excluded is nil) and returns a map from file
// basename to the sorted list of relative paths (from root) at which
// that basename was found. It is used as the last-resort fallback when
// a discriminator mapping value cannot be resolved by exact path,
// normalized path, or an unambiguous existing basename.
func Scan(root string, excluded map[string]bool) (map[string][]string, error) {
	if excluded == nil {
		excluded = excludedDirs
	}
	results := make(map[string][]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		base := filepath.Base(path)
		results[base] = append(results[base], filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fileutil: scanning %s: %w", root, err)
	}
	for base := range results {
		sort.Strings(results[base])
	}
	return results, nil
}

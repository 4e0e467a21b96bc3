package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// documentInput represents the two ways a document can be provided to a
// tool. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an AsyncAPI document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline AsyncAPI document content (JSON or YAML)"`
}

// isJSON reports whether path's extension suggests JSON.
func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// resolve reads and decodes the document, returning the generic node tree,
// whether it was JSON-flavored (so the output can be marshaled back the
// same way), and the directory discriminator-mapping values should
// resolve against.
func (d documentInput) resolve() (doc any, asJSON bool, dir string, err error) {
	count := 0
	if d.File != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return nil, false, "", fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	var data []byte
	switch {
	case d.File != "":
		data, err = os.ReadFile(d.File) //nolint:gosec // G304 - path supplied by the MCP client, same trust boundary as a CLI argument
		if err != nil {
			return nil, false, "", fmt.Errorf("reading %s: %w", d.File, err)
		}
		asJSON = isJSON(d.File)
		dir = filepath.Dir(d.File)
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, false, "", fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set BUNDLER_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		data = []byte(d.Content)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, "", fmt.Errorf("parsing document: %w", err)
	}
	return doc, asJSON, dir, nil
}

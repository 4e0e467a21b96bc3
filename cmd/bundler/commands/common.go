// Package commands provides CLI command handlers for bundler.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"encoding/json"

	"go.yaml.in/yaml/v4"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Writef writes formatted output to the writer, logging to stderr if the
// write itself fails (useful for debugging a broken output pipe).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// isJSON reports whether path's extension suggests JSON, so the output is
// re-marshaled in the same family the input was read in.
func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadDocument reads path (or stdin, if path is StdinFilePath) and decodes
// it as YAML or JSON into the generic document tree. JSON is valid YAML,
// so a single decoder handles both.
func LoadDocument(path string) (any, error) {
	var data []byte
	var err error
	if path == StdinFilePath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304 - path is a user-provided CLI argument
	}
	if err != nil {
		return nil, fmt.Errorf("commands: reading %s: %w", FormatSpecPath(path), err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("commands: parsing %s: %w", FormatSpecPath(path), err)
	}
	return doc, nil
}

// MarshalDocument marshals doc as JSON if asJSON is set, otherwise as YAML.
func MarshalDocument(doc any, asJSON bool) ([]byte, error) {
	if asJSON {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// ValidateOutputPath checks that outputPath would not silently overwrite
// one of the command's own input paths.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("commands: invalid output path: %w", err)
	}
	for _, in := range inputPaths {
		if in == StdinFilePath {
			continue
		}
		absIn, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("commands: invalid input path %s: %w", in, err)
		}
		if absOutput == absIn {
			return fmt.Errorf("commands: output file %s would overwrite input file %s", outputPath, in)
		}
	}
	if _, err := os.Stat(outputPath); err == nil {
		Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}
	return nil
}

// RejectSymlinkOutput refuses to write through a symlink, preventing
// symlink attacks that redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

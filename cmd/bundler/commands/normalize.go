package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MiaInturi/bundler"
	"github.com/MiaInturi/bundler/normalize"
)

// NormalizeFlags contains flags for the normalize command.
type NormalizeFlags struct {
	Output     string
	WorkingDir string
	Quiet      bool
}

// SetupNormalizeFlags creates and configures a FlagSet for the normalize command.
func SetupNormalizeFlags() (*flag.FlagSet, *NormalizeFlags) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	flags := &NormalizeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.WorkingDir, "working-dir", "", "directory discriminator-mapping files resolve against (default: current directory)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: bundler normalize [flags] <file>\n\n")
		Writef(fs.Output(), "Normalize an already-bundled AsyncAPI document: hoist inlined schemas\n")
		Writef(fs.Output(), "into components.schemas, deduplicate equivalent schemas, resolve\n")
		Writef(fs.Output(), "discriminator mappings, rewrite channel references, and strip\n")
		Writef(fs.Output(), "x-origin bookkeeping.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  bundler normalize -o normalized.yaml bundled.yaml\n")
		Writef(fs.Output(), "  bundler normalize bundled.yaml | bundler normalize -q - > /dev/null\n")
		Writef(fs.Output(), "  cat bundled.yaml | bundler normalize -\n")
	}

	return fs, flags
}

// HandleNormalize executes the normalize command.
func HandleNormalize(args []string) error {
	fs, flags := SetupNormalizeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("normalize command requires exactly one input file (or - for stdin)")
	}
	inputPath := fs.Arg(0)

	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{inputPath}); err != nil {
			return err
		}
	}

	doc, err := LoadDocument(inputPath)
	if err != nil {
		return err
	}

	var opts []normalize.Option
	if flags.WorkingDir != "" {
		opts = append(opts, normalize.WithWorkingDir(flags.WorkingDir))
	}

	startTime := time.Now()
	if err := normalize.Normalize(doc, opts...); err != nil {
		return fmt.Errorf("normalizing document: %w", err)
	}
	totalTime := time.Since(startTime)

	asJSON := isJSON(inputPath) || (flags.Output != "" && isJSON(flags.Output))
	data, err := MarshalDocument(doc, asJSON)
	if err != nil {
		return fmt.Errorf("marshaling normalized document: %w", err)
	}

	if !flags.Quiet {
		Writef(os.Stderr, "AsyncAPI Document Normalizer\n")
		Writef(os.Stderr, "============================\n\n")
		Writef(os.Stderr, "bundler version: %s\n", bundler.Version())
		Writef(os.Stderr, "Document: %s\n", FormatSpecPath(inputPath))
		if flags.Output != "" {
			Writef(os.Stderr, "Output: %s\n", flags.Output)
		} else {
			Writef(os.Stderr, "Output: <stdout>\n")
		}
		Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
	}

	if flags.Output != "" {
		cleaned := filepath.Clean(flags.Output)
		if err := RejectSymlinkOutput(cleaned); err != nil {
			return err
		}
		if err := os.WriteFile(cleaned, data, 0o600); err != nil { //nolint:gosec // G306 - output path is a user-provided CLI flag
			return fmt.Errorf("writing output file: %w", err)
		}
		if err := os.Chmod(cleaned, 0o600); err != nil {
			return fmt.Errorf("setting output file permissions: %w", err)
		}
		if !flags.Quiet {
			Writef(os.Stderr, "Output written to: %s\n", cleaned)
		}
		return nil
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing normalized document to stdout: %w", err)
	}
	return nil
}

package normalize

import (
	"errors"
	"fmt"
)

// ErrLoadFailed wraps a parse or I/O failure encountered while loading a
// discriminator-mapping file on demand. Unlike an unresolved mapping
// value, which is left untouched silently, a load failure aborts the
// whole normalization pass.
var ErrLoadFailed = errors.New("normalize: on-demand schema load failed")

// ErrScanFailed wraps an I/O failure during the directory scan fallback
// used to locate a discriminator-mapping file by basename.
var ErrScanFailed = errors.New("normalize: directory scan failed")

func wrapLoad(path string, err error) error {
	return fmt.Errorf("normalize: loading %s: %w: %w", path, ErrLoadFailed, err)
}

func wrapScan(dir string, err error) error {
	return fmt.Errorf("normalize: scanning %s: %w: %w", dir, ErrScanFailed, err)
}

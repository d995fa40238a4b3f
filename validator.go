package sqlcsv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/sqlcsv/driver"
)

var (
	errNoSources     = errors.New("at least one input file is required")
	errNotRegular    = errors.New("not a regular file")
	errNotDirectory  = errors.New("not a directory")
	errBadBatchSize  = errors.New("batch size must be at least 1")
	errOutputIsInput = errors.New("output file is also an input file")
)

// validator handles validation logic for Builder
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validateSourcePath checks that path names an existing regular file
func (v *validator) validateSourcePath(path string) error {
	if err := driver.ValidatePath(path); err != nil {
		return fmt.Errorf("%w: %q", err, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s: %w", path, err)
		}
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", errNotRegular, path)
	}
	return nil
}

// validateOutputPath checks that path can be created: its directory must
// exist and path itself must not be a directory.
func (v *validator) validateOutputPath(path string) error {
	if err := driver.ValidatePath(path); err != nil {
		return fmt.Errorf("%w: %q", err, path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", errNotDirectory, dir)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", errNotRegular, path)
	}
	return nil
}

// validateBatchSize checks the requested rows per INSERT
func (v *validator) validateBatchSize(size int) error {
	if size < MinBatchSize {
		return fmt.Errorf("%w: %d", errBadBatchSize, size)
	}
	return nil
}

// validateDistinctOutput rejects an output file that is one of the inputs
func (v *validator) validateDistinctOutput(output string, inputs []string) error {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return nil //nolint:nilerr // unresolvable paths cannot collide
	}
	for _, in := range inputs {
		inAbs, err := filepath.Abs(in)
		if err != nil {
			continue
		}
		if inAbs == outAbs {
			return fmt.Errorf("%w: %s", errOutputIsInput, output)
		}
	}
	return nil
}

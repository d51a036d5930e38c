package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for the failure taxonomy. Callers classify with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// EngineError wraps a failure reported by the embedded Hyper engine.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("hyper engine error (%s): %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// HyperExt is the file extension of Hyper database containers.
const HyperExt = ".hyper"

// ValidateHyperPath checks that path exists and carries the .hyper
// extension. It runs before the engine is consulted so that obvious
// mistakes never cost an engine round trip.
func ValidateHyperPath(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), HyperExt) {
		return nil, fmt.Errorf("%w: not a %s file: %s", ErrInvalidInput, HyperExt, path)
	}
	return info, nil
}

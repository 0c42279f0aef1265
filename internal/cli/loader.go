package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/structmatch/internal/harness"
	"github.com/roach88/structmatch/pkg/shape"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No scenario files found
	ErrCodeLoadFailed  = "E004" // File read or parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeStoreFailed = "E006" // Run history database error
	ErrCodeWriteFailed = "E007" // File write error

	// Structure and scenario errors
	ErrCodeStructure = "E101" // Invalid structure document
	ErrCodeScenario  = "E102" // Invalid scenario (missing fields, bad expect, ...)
	ErrCodeFilter    = "E103" // Invalid --filter pattern

	// Outcome codes (command ran, result negative)
	ErrCodeNoMatch     = "E_NO_MATCH"
	ErrCodeTestsFailed = "E_TEST_FAILED"
)

// LoadError represents an error that occurred while loading an input file.
type LoadError struct {
	Code    string
	Message string
	Path    string // File the error refers to, if any
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// scenarioExts are the file extensions treated as scenarios.
var scenarioExts = map[string]bool{".yaml": true, ".yml": true, ".cue": true}

// skippedDirs hold golden snapshots and received-value fixtures, never
// scenarios.
var skippedDirs = map[string]bool{goldenDirName: true, "testdata": true}

// LoadStructureFile reads and decodes a structure document.
func LoadStructureFile(path string) (shape.Structure, error) {
	s, err := harness.LoadStructure(path)
	if err != nil {
		return nil, convertLoadError(path, err)
	}
	return s, nil
}

// LoadValueFile reads a received value from a JSON, YAML or CUE file.
func LoadValueFile(path string) (any, error) {
	v, err := harness.LoadValue(path)
	if err != nil {
		return nil, convertLoadError(path, err)
	}
	return v, nil
}

// LoadScenarioFile reads, validates and compiles a scenario file.
func LoadScenarioFile(path string) (*harness.Scenario, error) {
	s, err := harness.LoadScenario(path)
	if err != nil {
		return nil, convertLoadError(path, err)
	}
	return s, nil
}

// convertLoadError maps loader errors to a LoadError with an error code.
func convertLoadError(path string, err error) *LoadError {
	code := ErrCodeLoadFailed
	var decodeErr *harness.DecodeError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = ErrCodeNotFound
	case errors.As(err, &decodeErr):
		code = ErrCodeStructure
	case errors.Is(err, harness.ErrInvalidScenario):
		code = ErrCodeScenario
	}
	return &LoadError{Code: code, Message: err.Error(), Path: path, Err: err}
}

// FindScenarioFiles walks dir and returns scenario files (.yaml, .yml, .cue)
// in lexical order. A non-empty filter is a glob matched against the file
// name without its extension. Files under "golden" and "testdata"
// directories are skipped.
func FindScenarioFiles(dir string, filter string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("scenarios directory not found: %s", dir), Err: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, &LoadError{Code: ErrCodeFilter, Message: fmt.Sprintf("invalid filter pattern %q", filter), Err: err}
		}
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if !scenarioExts[ext] {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(d.Name(), ext)
			if matched, _ := filepath.Match(filter, name); !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Err: err}
	}

	return files, nil
}

// loadErrorCode returns the code of a LoadError, or ErrCodeGeneric.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}

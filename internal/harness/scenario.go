package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/structmatch/pkg/shape"
)

// Scenario defines a structural conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Structure is the raw structure document, decoded by DecodeStructure.
	Structure any `yaml:"structure"`

	// Cases are the received values checked against Structure.
	Cases []Case `yaml:"cases"`

	// Dir is the directory received_file paths are resolved against.
	// Set by LoadScenario to the scenario file's directory.
	Dir string `yaml:"-"`

	compiled shape.Structure
}

// Case is one received value and its expected verdict.
type Case struct {
	Name string `yaml:"name"`

	// Received is the inline received value.
	Received any `yaml:"received,omitempty"`

	// ReceivedFile loads the received value from a JSON, YAML or CUE file
	// instead. Relative paths resolve against the scenario directory.
	ReceivedFile string `yaml:"received_file,omitempty"`

	// Expect is "pass" or "fail".
	Expect string `yaml:"expect"`

	// FailingKeys optionally pins the exact set of failing keys of a
	// "fail" case. Order is irrelevant.
	FailingKeys []string `yaml:"failing_keys,omitempty"`
}

// ErrInvalidScenario wraps every validation and structure error returned by
// LoadScenario, as opposed to read and parse errors.
var ErrInvalidScenario = errors.New("invalid scenario")

// Expectation values.
const (
	ExpectPass = "pass"
	ExpectFail = "fail"
)

// LoadScenario reads and parses a scenario file (.yaml, .yml or .cue).
// Unknown fields are rejected, the scenario is validated and its structure
// compiled.
func LoadScenario(path string) (*Scenario, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields (catches typos like "case:" vs "cases:")
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	scenario.Dir = filepath.Dir(path)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := scenario.Compile(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return &scenario, nil
}

// Compile decodes the raw structure. It is called by LoadScenario and, for
// scenarios built in code, lazily by Run.
func (s *Scenario) Compile() error {
	compiled, err := DecodeStructure(s.Structure)
	if err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	s.compiled = compiled
	return nil
}

// Shape returns the compiled structure, compiling it on first use.
func (s *Scenario) Shape() (shape.Structure, error) {
	if s.compiled == nil {
		if err := s.Compile(); err != nil {
			return nil, err
		}
	}
	return s.compiled, nil
}

// LoadValue reads a received value from a JSON, YAML or CUE file.
func LoadValue(path string) (any, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return value, nil
}

// LoadStructure reads a structure document from a file and decodes it.
func LoadStructure(path string) (shape.Structure, error) {
	raw, err := LoadValue(path)
	if err != nil {
		return nil, err
	}
	s, err := DecodeStructure(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// readDocument returns YAML-compatible bytes for path. CUE files are
// evaluated and exported as JSON, which YAML decoders accept.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if filepath.Ext(path) != ".cue" {
		return data, nil
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE %s: %w", path, err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE %s is not concrete: %w", path, err)
	}
	out, err := value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export CUE %s: %w", path, err)
	}
	return out, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Structure == nil {
		return fmt.Errorf("structure is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		switch c.Expect {
		case ExpectPass:
			if len(c.FailingKeys) > 0 {
				return fmt.Errorf("cases[%d]: failing_keys requires expect: fail", i)
			}
		case ExpectFail:
		case "":
			return fmt.Errorf("cases[%d]: expect is required", i)
		default:
			return fmt.Errorf("cases[%d]: expect must be %q or %q, got %q", i, ExpectPass, ExpectFail, c.Expect)
		}

		if c.Received != nil && c.ReceivedFile != "" {
			return fmt.Errorf("cases[%d]: received and received_file are mutually exclusive", i)
		}
		if c.ReceivedFile != "" {
			path := resolvePath(s.Dir, c.ReceivedFile)
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return fmt.Errorf("cases[%d]: received file not found: %s", i, path)
			}
		}
	}

	return nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

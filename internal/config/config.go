// Package config loads .typeflow.yaml, the project-level configuration
// for the CLI: output format, whether diagnostics should fail the
// process, and a list of extra built-in prototype properties (parsed
// only; the analyzer does not apply it). Grounded on
// internal/ext.Config's yaml.v3 pattern.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file typeflow looks for in the analyzed
// file's directory and its ancestors.
const FileName = ".typeflow.yaml"

// Format selects how diagnostics are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config is the top-level .typeflow.yaml document.
type Config struct {
	// Format selects text or json diagnostic rendering. Defaults to
	// "text" when omitted or unrecognized.
	Format Format `yaml:"format,omitempty"`

	// FailOnDiagnostic makes the CLI exit non-zero whenever any
	// diagnostic is reported. Defaults to true.
	FailOnDiagnostic *bool `yaml:"fail_on_diagnostic,omitempty"`

	// ExtraProperties lists additional properties for a built-in
	// prototype (Object, Array, ...), keyed by prototype name. The
	// entries are parsed and kept on the Config only: the analyzer never
	// reads them, so they do not change the built-in prototypes or any
	// diagnostic.
	ExtraProperties map[string][]ExtraProperty `yaml:"extra_properties,omitempty"`
}

// ExtraProperty names one additional prototype property and its type.
// Type is stored as written; it is not checked against the known type
// names.
type ExtraProperty struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FailsOnDiagnostic reports whether the configured value (defaulting
// to true when unset).
func (c *Config) FailsOnDiagnostic() bool {
	if c.FailOnDiagnostic == nil {
		return true
	}
	return *c.FailOnDiagnostic
}

// EffectiveFormat returns c.Format, defaulting to FormatText.
func (c *Config) EffectiveFormat() Format {
	if c.Format == FormatJSON {
		return FormatJSON
	}
	return FormatText
}

// Load reads and parses path. A missing file is not an error: Load
// returns the zero Config, which behaves as the documented defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses .typeflow.yaml content from bytes. path is only used
// for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Find walks up from dir looking for .typeflow.yaml, returning its
// path or "" if none is found before reaching the filesystem root.
func Find(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

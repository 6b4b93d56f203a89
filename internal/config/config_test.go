package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(``), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EffectiveFormat() != FormatText {
		t.Errorf("format = %q, want text", cfg.EffectiveFormat())
	}
	if !cfg.FailsOnDiagnostic() {
		t.Errorf("expected fail_on_diagnostic to default to true")
	}
}

func TestParseExplicitValues(t *testing.T) {
	yaml := `
format: json
fail_on_diagnostic: false
extra_properties:
  Object:
    - name: toJSON
      type: Function
`
	cfg, err := Parse([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EffectiveFormat() != FormatJSON {
		t.Errorf("format = %q, want json", cfg.EffectiveFormat())
	}
	if cfg.FailsOnDiagnostic() {
		t.Errorf("expected fail_on_diagnostic to be false")
	}
	props, ok := cfg.ExtraProperties["Object"]
	if !ok || len(props) != 1 || props[0].Name != "toJSON" {
		t.Errorf("unexpected extra properties: %+v", cfg.ExtraProperties)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EffectiveFormat() != FormatText {
		t.Errorf("expected default format for a missing config file")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	configPath := filepath.Join(root, FileName)
	if err := os.WriteFile(configPath, []byte("format: json\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	found := Find(nested)
	if found != configPath {
		t.Errorf("Find(%q) = %q, want %q", nested, found, configPath)
	}
}

func TestFindNoneReturnsEmpty(t *testing.T) {
	if got := Find(t.TempDir()); got != "" {
		t.Errorf("expected no config to be found, got %q", got)
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.lang")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	return path
}

func TestRunReportsDiagnosticAndFails(t *testing.T) {
	path := writeSource(t, `const n = 1; n = "s";`)
	if code := run([]string{path}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunCleanProgramSucceeds(t *testing.T) {
	path := writeSource(t, `const n = 1;`)
	if code := run([]string{path}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRunDumpScopeSucceeds(t *testing.T) {
	path := writeSource(t, `const n = 1;`)
	if code := run([]string{"-dump-scope", path}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRunFeatureGapFails(t *testing.T) {
	path := writeSource(t, `const a = { b: 1 }; const c = { ...a };`)
	if code := run([]string{path}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunRespectsFailOnDiagnosticConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".typeflow.yaml"), []byte("fail_on_diagnostic: false\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	path := filepath.Join(dir, "program.lang")
	if err := os.WriteFile(path, []byte(`const n = 1; n = "s";`), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	if code := run([]string{path}); code != 0 {
		t.Errorf("exit code = %d, want 0 with fail_on_diagnostic: false", code)
	}
}

func TestRunMissingFileFails(t *testing.T) {
	if code := run([]string{filepath.Join(t.TempDir(), "missing.lang")}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

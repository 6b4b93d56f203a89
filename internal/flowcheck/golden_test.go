package flowcheck

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/arolab/typeflow/internal/diagnostics"
	"github.com/arolab/typeflow/internal/lexer"
	"github.com/arolab/typeflow/internal/parser"
)

// TestGoldenScenarios replays every <name>.lang/<name>.want pair packed
// in testdata/scenarios.txtar: the diagnostic kinds Run reports for the
// source must match the .want file's kind list exactly.
func TestGoldenScenarios(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/scenarios.txtar")
	if err != nil {
		t.Fatalf("loading golden fixtures: %v", err)
	}

	sources := make(map[string]string)
	wants := make(map[string][]string)
	for _, f := range archive.Files {
		name := strings.TrimSuffix(f.Name, ".lang")
		name = strings.TrimSuffix(name, ".want")
		switch {
		case strings.HasSuffix(f.Name, ".lang"):
			sources[name] = string(f.Data)
		case strings.HasSuffix(f.Name, ".want"):
			wants[name] = splitNonEmpty(string(f.Data))
		}
	}

	if len(sources) == 0 {
		t.Fatal("no scenarios loaded from testdata/scenarios.txtar")
	}

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name := name
		t.Run(name, func(t *testing.T) {
			p := parser.New(lexer.New(sources[name]))
			program, errs := p.Parse()
			if len(errs) != 0 {
				t.Fatalf("parse errors: %v", errs)
			}

			result, err := Run(program)
			if err != nil {
				t.Fatalf("unexpected fatal error: %v", err)
			}

			got := kindNames(result.Diagnostics.Ordered())
			want := wants[name]
			if !equalSlices(got, want) {
				t.Errorf("diagnostics = %v, want %v", got, want)
			}
		})
	}
}

func kindNames(ds []*diagnostics.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Kind.String()
	}
	return out
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

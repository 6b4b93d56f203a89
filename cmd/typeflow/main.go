// Command typeflow runs the type-flow analyzer over a single source
// file and reports its diagnostics. It never logs: every failure path
// is a returned error rendered once and an exit code, following
// spec.md §6's external-interfaces contract. Flag handling and the
// colorized-output decision are grounded on cmd/funxy/main.go and
// internal/evaluator/builtins_term.go's isatty-based color detection.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/arolab/typeflow/internal/config"
	"github.com/arolab/typeflow/internal/diagnostics"
	"github.com/arolab/typeflow/internal/flowcheck"
	"github.com/arolab/typeflow/internal/lexer"
	"github.com/arolab/typeflow/internal/parser"
	"github.com/arolab/typeflow/internal/source"
	"github.com/arolab/typeflow/internal/typesystem"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("typeflow", flag.ContinueOnError)
	dumpScope := fs.Bool("dump-scope", false, "print the module scope snapshot as JSON instead of diagnostics")
	configPath := fs.String("config", "", "path to a .typeflow.yaml config file (defaults to auto-detected)")
	format := fs.String("format", "", "diagnostic output format: text or json (overrides config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: typeflow [flags] <file>")
		return 2
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath, path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *format == string(config.FormatJSON) {
		cfg.Format = config.FormatJSON
	} else if *format == string(config.FormatText) {
		cfg.Format = config.FormatText
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	p := parser.New(lexer.New(string(src)))
	program, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	result, err := flowcheck.Run(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		return 1
	}

	if *dumpScope {
		return dumpScopeSnapshot(result.Scope)
	}

	return reportDiagnostics(path, result.Diagnostics.Ordered(), cfg)
}

func loadConfig(explicit, sourcePath string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	found := config.Find(filepath.Dir(sourcePath))
	if found == "" {
		return &config.Config{}, nil
	}
	return config.Load(found)
}

func dumpScopeSnapshot(scope *typesystem.Scope) int {
	atEnd := func(v *typesystem.Variable) typesystem.Type {
		return v.TypeAt(source.Location{Start: math.MaxUint32})
	}
	data, err := typesystem.MarshalScope(scope.Snapshot(atEnd))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func reportDiagnostics(path string, ds []*diagnostics.Diagnostic, cfg *config.Config) int {
	if cfg.EffectiveFormat() == config.FormatJSON {
		printJSON(ds)
	} else {
		printText(path, ds)
	}

	if len(ds) > 0 && cfg.FailsOnDiagnostic() {
		return 1
	}
	return 0
}

func printText(path string, ds []*diagnostics.Diagnostic) {
	useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	for _, d := range ds {
		label := d.Kind.String()
		if useColor {
			label = "\033[31m" + label + "\033[39m"
		}
		fmt.Printf("%s:%s: %s: %s\n", path, d.Location, label, d.Message())
	}
}

type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
}

func printJSON(ds []*diagnostics.Diagnostic) {
	out := make([]jsonDiagnostic, len(ds))
	for i, d := range ds {
		out[i] = jsonDiagnostic{
			Kind:    d.Kind.String(),
			Message: d.Message(),
			Line:    d.Location.Line,
			Column:  d.Location.Column,
			Start:   d.Location.Start,
			End:     d.Location.End,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

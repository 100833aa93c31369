// Package cli formats failures of a bindgen run for the terminal.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/godotjs/javascript/internal/codegen/generator"
	"github.com/godotjs/javascript/internal/codegen/generator/quickjs"
	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

// DiagnosticReporter prints a failure summary with a hint matching the
// error kind.
type DiagnosticReporter struct {
	w     io.Writer
	title *color.Color
	label *color.Color
	hint  *color.Color
}

// NewDiagnosticReporter writes to f, with color only when f is a terminal.
func NewDiagnosticReporter(f *os.File) *DiagnosticReporter {
	return NewDiagnosticReporterTo(f, term.IsTerminal(int(f.Fd())))
}

func NewDiagnosticReporterTo(w io.Writer, colored bool) *DiagnosticReporter {
	r := &DiagnosticReporter{
		w:     w,
		title: color.New(color.FgRed, color.Bold),
		label: color.New(color.Bold),
		hint:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.title, r.label, r.hint} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Diagnostic is the classified form of a run error.
type Diagnostic struct {
	Kind    string
	Details [][2]string
	Hint    string
}

// Classify maps err onto a diagnostic.
func Classify(err error) Diagnostic {
	var (
		notFound    *schema.InputNotFoundError
		invalid     *schema.ValidationError
		lookup      *schema.LookupError
		unsupported *quickjs.UnsupportedOperatorError
		keys        *pattern.KeyError
	)
	switch {
	case errors.As(err, &notFound):
		return Diagnostic{
			Kind:    "input not found",
			Details: [][2]string{{"path", notFound.Path}},
			Hint:    "pass the API document with --schema or set BINDGEN_SCHEMA",
		}
	case errors.As(err, &invalid):
		return Diagnostic{
			Kind:    "invalid API document",
			Details: [][2]string{{"path", invalid.Path}},
			Hint:    "run 'bindgen schema dump' to see the expected document format",
		}
	case errors.As(err, &lookup):
		d := Diagnostic{
			Kind:    "unknown name",
			Details: [][2]string{{"table", lookup.Table}, {"name", lookup.Key}},
			Hint:    "the engine type tables or the class list have no entry for this name",
		}
		if lookup.Where != "" {
			d.Details = append(d.Details, [2]string{"referenced by", lookup.Where})
		}
		return d
	case errors.As(err, &unsupported):
		return Diagnostic{
			Kind:    "unsupported operator",
			Details: [][2]string{{"class", unsupported.Class}, {"operator", unsupported.Operator}, {"reason", unsupported.Reason}},
			Hint:    "exclude it with ignored_operators in the overrides file or pass --allow-unknown-operators",
		}
	case errors.As(err, &keys):
		return Diagnostic{
			Kind:    "template mismatch",
			Details: [][2]string{{"template", keys.Template}},
		}
	case errors.Is(err, generator.ErrOutOfDate):
		return Diagnostic{
			Kind: "generated files out of date",
			Hint: "run 'bindgen generate' and commit the result",
		}
	default:
		return Diagnostic{Kind: "generation failed"}
	}
}

// Report prints err. A nil error prints nothing.
func (r *DiagnosticReporter) Report(err error) {
	if err == nil {
		return
	}
	d := Classify(err)
	r.title.Fprintf(r.w, "bindgen: %s\n", d.Kind)
	fmt.Fprintf(r.w, "  %s\n", err)
	for _, kv := range d.Details {
		fmt.Fprintf(r.w, "  %s %s\n", r.label.Sprintf("%s:", kv[0]), kv[1])
	}
	if d.Hint != "" {
		r.hint.Fprintf(r.w, "  hint: %s\n", d.Hint)
	}
}

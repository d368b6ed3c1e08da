package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/rlch/graphcat"
	"github.com/rlch/graphcat/analysis"
)

var (
	colorBlue   = lipgloss.Color("#1D9BF0")
	colorGreen  = lipgloss.Color("#00BA7C")
	colorRed    = lipgloss.Color("#F4212E")
	colorYellow = lipgloss.Color("#FFD400")
	colorDim    = lipgloss.Color("#8899A6")
)

// printer writes command output, styled only when w is a terminal.
type printer struct {
	w     io.Writer
	color bool

	name    lipgloss.Style
	dim     lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.color = true
		p.name = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
		p.dim = lipgloss.NewStyle().Foreground(colorDim)
		p.ok = lipgloss.NewStyle().Foreground(colorGreen)
		p.err = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
		p.warning = lipgloss.NewStyle().Foreground(colorYellow)
	}

	return p
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}

	return style.Render(s)
}

func (p *printer) source(kind, name string, schema *graphcat.Schema) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(p.dim, kind), p.render(p.name, name))

	if schema.Len() == 0 {
		fmt.Fprintf(p.w, "  %s\n", p.render(p.dim, "(no columns)"))

		return
	}

	for _, f := range schema.Fields() {
		fmt.Fprintf(p.w, "  %s\n", f)
	}
}

func (p *printer) missing(kind, name string) {
	fmt.Fprintf(p.w, "%s %s: %s\n", p.render(p.dim, kind), p.render(p.name, name), p.render(p.err, "not found"))
}

func (p *printer) stat(name, labels string, value float64) {
	fmt.Fprintf(p.w, "%s{%s} %g\n", p.render(p.dim, name), labels, value)
}

func (p *printer) diagnostics(diags []analysis.Diagnostic) {
	if len(diags) == 0 {
		fmt.Fprintln(p.w, p.render(p.ok, "no problems found"))

		return
	}

	var errs, warnings int

	for _, d := range diags {
		style := p.dim

		switch d.Severity {
		case analysis.SeverityError:
			errs++
			style = p.err
		case analysis.SeverityWarning:
			warnings++
			style = p.warning
		case analysis.SeverityHint:
		}

		fmt.Fprintf(p.w, "%s[%s] %s %s: %s\n",
			p.render(style, d.Severity.String()), d.Code, d.Kind, p.render(p.name, d.Subject), d.Message)
	}

	fmt.Fprintf(p.w, "%s, %s\n", plural(errs, "error"), plural(warnings, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}

	return fmt.Sprintf("%d %ss", n, word)
}

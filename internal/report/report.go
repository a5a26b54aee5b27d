package report

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Style selects the line prefixes a Printer uses.
type Style int

const (
	// Plain prints PASS:/FAIL:/WARN: prefixes.
	Plain Style = iota
	// Emoji prints ✅/❌/⚠️ prefixes.
	Emoji
)

const rule = "========================================"

// Printer writes the human-readable run report.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	style  Style
}

// New returns a Printer writing to out, with failure banners on errOut.
func New(out, errOut io.Writer, style Style) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{out: out, errOut: errOut, style: style}
}

func (p *Printer) prefix(kind string) string {
	if p.style == Emoji {
		switch kind {
		case "PASS":
			return "✅"
		case "FAIL":
			return "❌"
		default:
			return "⚠️"
		}
	}
	return kind + ":"
}

// Pass prints a passed check.
func (p *Printer) Pass(label string) { p.Linef("%s %s", p.prefix("PASS"), label) }

// Fail prints a failed check.
func (p *Printer) Fail(label string) { p.Linef("%s %s", p.prefix("FAIL"), label) }

// Warn prints an advisory mismatch.
func (p *Printer) Warn(msg string) { p.Linef("%s %s", p.prefix("WARN"), msg) }

// Result prints label as a pass or a failure.
func (p *Printer) Result(ok bool, label string) {
	if ok {
		p.Pass(label)
		return
	}
	p.Fail(label)
}

// Linef prints one formatted line to stdout.
func (p *Printer) Linef(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() { fmt.Fprintln(p.out) }

// Banner prints lines between two rules.
func (p *Printer) Banner(lines ...string) {
	fmt.Fprintln(p.out, rule)
	for _, l := range lines {
		fmt.Fprintln(p.out, l)
	}
	fmt.Fprintln(p.out, rule)
}

// Section prints a scenario heading.
func (p *Printer) Section(title string) {
	p.Linef("--- %s ---", title)
}

// List prints items indented under a heading.
func (p *Printer) List(items []string) {
	for _, it := range items {
		p.Linef("  - %s", strings.TrimSpace(it))
	}
}

// Failure prints the fatal error banner to the error stream.
func (p *Printer) Failure(title string, err error) {
	fmt.Fprintln(p.errOut)
	fmt.Fprintln(p.errOut, rule)
	fmt.Fprintf(p.errOut, "%s %v\n", title, err)
	fmt.Fprintln(p.errOut, rule)
}

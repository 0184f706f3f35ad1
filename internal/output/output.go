// Package output provides styled terminal output for idlvet reports.
//
// Unlike tools that keep color and verbosity in package-level state, every
// knob lives on a Printer value that callers thread explicitly.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer renders styled messages to a writer.
type Printer struct {
	out     io.Writer
	color   bool
	verbose bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	dimStyle     lipgloss.Style
}

// Options configures a Printer.
type Options struct {
	Out     io.Writer // defaults to os.Stdout
	Color   bool
	Verbose bool
}

// NewPrinter creates a Printer with the given options.
func NewPrinter(opts Options) *Printer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Printer{
		out:          out,
		color:        opts.Color,
		verbose:      opts.Verbose,
		successStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		warnStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
		infoStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")),
		headerStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true),
		dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (p *Printer) render(style lipgloss.Style, msg string) string {
	if !p.color {
		return msg
	}
	return style.Render(msg)
}

// Success prints a success message with ✅ prefix and green color.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.render(p.successStyle, "✅ "+msg))
}

// Error prints an error message with ❌ prefix and red color.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.render(p.errorStyle, "❌ "+msg))
}

// Warning prints a warning message with ⚠️ prefix and yellow color.
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.out, p.render(p.warnStyle, "⚠️  "+msg))
}

// Info prints an informational message with ℹ️ prefix and cyan color.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.render(p.infoStyle, "ℹ️  "+msg))
}

// Header prints a banner line framed by rules, for report sections.
func (p *Printer) Header(msg string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.render(p.headerStyle, rule))
	fmt.Fprintln(p.out, p.render(p.headerStyle, msg))
	fmt.Fprintln(p.out, p.render(p.headerStyle, rule))
	fmt.Fprintln(p.out)
}

// Detail prints an indented detail line in gray.
func (p *Printer) Detail(msg string) {
	fmt.Fprintln(p.out, p.render(p.dimStyle, "   "+msg))
}

// DetailError prints an indented error detail line.
func (p *Printer) DetailError(msg string) {
	fmt.Fprintln(p.out, p.render(p.errorStyle, "   "+msg))
}

// DetailWarning prints an indented warning detail line.
func (p *Printer) DetailWarning(msg string) {
	fmt.Fprintln(p.out, p.render(p.warnStyle, "   "+msg))
}

// Plain prints an unstyled line.
func (p *Printer) Plain(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Debug prints a 🔍 message only when verbose mode is enabled.
func (p *Printer) Debug(msg string) {
	if p.verbose {
		fmt.Fprintln(p.out, p.render(p.dimStyle, "🔍 "+msg))
	}
}

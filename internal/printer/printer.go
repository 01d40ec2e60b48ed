// Package printer writes user-facing CLI output.
// Output goes to STDERR by default, and is colored only when enabled and attached to a terminal.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/saylorsolutions/sectomie/internal/logging"
)

type Printer struct {
	out     io.Writer
	success *color.Color
	warning *color.Color
	failure *color.Color
	accent  *color.Color
}

// New creates a [Printer] writing to STDERR.
func New(noColor bool) *Printer {
	p := &Printer{
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
		accent:  color.New(color.FgCyan),
	}
	p.Redirect(os.Stderr, noColor)
	return p
}

// Redirect sends output to writer. Color is disabled unless writer is a terminal.
func (p *Printer) Redirect(writer io.Writer, noColor bool) {
	p.out = writer
	p.SetNoColor(noColor)
}

// SetNoColor disables color, or enables it if the current writer is a terminal.
func (p *Printer) SetNoColor(noColor bool) {
	enabled := !noColor && logging.IsTerminal(p.out)
	for _, c := range []*color.Color{p.success, p.warning, p.failure, p.accent} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}

// Success prints a line in green.
func (p *Printer) Success(format string, args ...any) {
	_, _ = p.success.Fprintf(p.out, format+"\n", args...)
}

// Warning prints a line in yellow.
func (p *Printer) Warning(format string, args ...any) {
	_, _ = p.warning.Fprintf(p.out, format+"\n", args...)
}

// Failure prints a line in bold red.
func (p *Printer) Failure(format string, args ...any) {
	_, _ = p.failure.Fprintf(p.out, format+"\n", args...)
}

// Accent returns s colored for emphasis, for use within other output.
func (p *Printer) Accent(s string) string {
	return p.accent.Sprint(s)
}

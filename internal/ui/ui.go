package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color shortcuts.
var (
	Red  = color.New(color.FgRed).SprintFunc()
	Bold = color.New(color.Bold).SprintFunc()
)

// Printer writes user-facing progress and diagnostics.
type Printer struct {
	Out io.Writer
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Out: w}
}

// AlreadyOn reports that the target is the current branch.
func (p *Printer) AlreadyOn(branch string) {
	p.Info("Already on '%s'", branch)
}

// Moving announces a switch between branches.
func (p *Printer) Moving(from, to string) {
	p.Info("Intelligently moving from branch %s to branch %s", Bold(from), Bold(to))
}

// Error prints "Error: <message>".
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.Out, Red("Error:")+" "+format+"\n", args...)
}

// Info prints a regular message.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// IsTerminal reports whether w is a file connected to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorMode applies "auto", "always" or "never" for output written to w.
// Auto enables color only when w is a terminal and NO_COLOR is unset.
func SetColorMode(mode string, w io.Writer) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = os.Getenv("NO_COLOR") != "" || !IsTerminal(w)
	}
}

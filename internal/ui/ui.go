// Package ui prints styled status lines to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	out io.Writer = os.Stdout

	green  = lipgloss.Color("2")
	red    = lipgloss.Color("1")
	yellow = lipgloss.Color("3")
	dim    = lipgloss.Color("8")

	Success = lipgloss.NewStyle().Foreground(green)
	Error   = lipgloss.NewStyle().Foreground(red)
	Warning = lipgloss.NewStyle().Foreground(yellow)
	Dim     = lipgloss.NewStyle().Foreground(dim)
)

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects all output and returns the previous writer.
// Colors are disabled for anything other than a terminal stdout.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return prev
}

// Wrote prints "wrote: <msg>".
func Wrote(msg string) {
	fmt.Fprintf(out, "%s %s\n", Success.Render("wrote:"), msg)
}

// Skipped prints "skipped: <msg>".
func Skipped(msg string) {
	fmt.Fprintf(out, "%s %s\n", Warning.Render("skipped:"), msg)
}

// ErrorMsg prints "error: <msg>".
func ErrorMsg(msg string) {
	fmt.Fprintf(out, "%s %s\n", Error.Render("error:"), msg)
}

// Detail prints indented secondary info
func Detail(msg string) {
	fmt.Fprintf(out, "  %s %s\n", Dim.Render("→"), msg)
}

func Println(a ...any) {
	fmt.Fprintln(out, a...)
}

func Printf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

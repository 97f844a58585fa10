package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgCyan   = "\033[36m"
	fgRed    = "\033[31m"

	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// isTTY reports whether w is a terminal. Only *os.File can be one.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// C colours s for text headed to stdout.
func C(color, s string) string { return paint(os.Stdout, color, s) }

func paint(w io.Writer, color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY(w) {
		return color + s + reset
	}
	return s
}

// Dim wraps s in the faint attribute.
func Dim(s string) string { return C(dim, s) }

// Fail prints msg in the error style.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, paint(w, fgRed, symCross+" "+msg)) }

// Hint prints a faint follow-up line under a failure.
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, paint(w, dim, msg)) }

// Package termcolor colors terminal output. Colors are applied only when
// stdout is a terminal and NO_COLOR is unset, so piped output stays plain.
package termcolor

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\x1b[0m"
	red    = "\x1b[31m"
	green  = "\x1b[32m"
	yellow = "\x1b[33m"
)

var enabled = isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""

func paint(code, s string) string {
	if !enabled {
		return s
	}
	return code + s + reset
}

// Green wraps s in green.
func Green(s string) string { return paint(green, s) }

// Red wraps s in red.
func Red(s string) string { return paint(red, s) }

// Yellow wraps s in yellow.
func Yellow(s string) string { return paint(yellow, s) }

package utils

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// TermWidth returns the current terminal width. In CI / tests there is
// often no TTY attached, so fall back to $COLUMNS or a sane default.
func TermWidth() int {
	if c := os.Getenv("COLUMNS"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			return n
		}
	}
	w, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// IsTTY reports whether stderr is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal or its size cannot
// be read, such as when output is piped into a file.
const DefaultWidth = 80

// Width returns the current terminal width in columns.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

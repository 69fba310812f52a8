package ui

import (
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width using a fallback chain:
// 1. Direct TTY query via golang.org/x/term
// 2. COLUMNS environment variable
// 3. Default of 80
func GetTerminalWidth() int {
	for _, fd := range []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())} {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if width, err := strconv.Atoi(cols); err == nil && width > 0 {
			return width
		}
	}

	return 80
}

// TerminalSupportsTrueColor reports whether the terminal handles 24-bit color.
func TerminalSupportsTrueColor() bool {
	return termenv.ColorProfile() == termenv.TrueColor
}

// File: cmd/color.go
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"github.com/maternion/matollama/internal/ui"
)

var (
	// Raw ANSI sequences for direct concatenation into streamed output
	dimColor   string
	resetColor string

	// Functional colors using SprintFunc
	promptColor  func(a ...interface{}) string
	accentColor  func(a ...interface{}) string
	successColor func(a ...interface{}) string
	warnColor    func(a ...interface{}) string
	errorColor   func(a ...interface{}) string
	verboseColor func(a ...interface{}) string
	mutedColor   func(a ...interface{}) string
)

func init() {
	setupColors()
}

func setupColors() {
	p := termenv.ColorProfile()

	// 1. Raw ANSI strings for concatenation
	resetColor = "\033[0m"
	if p >= termenv.ANSI256 {
		dimColor = "\033[38;5;244m"
	} else {
		dimColor = "\033[90m"
	}

	// 2. Functional colors (SprintFunc style)
	style := func(c string, bold bool) func(a ...interface{}) string {
		return func(a ...interface{}) string {
			s := termenv.String(fmt.Sprint(a...)).Foreground(p.Color(c))
			if bold {
				s = s.Bold()
			}
			return s.String()
		}
	}

	if ui.TerminalSupportsTrueColor() {
		promptColor = style("#00CED1", true)
		accentColor = style("#00BFFF", false)
		successColor = style("#00FF7F", false)
		mutedColor = style("#808080", false)
	} else {
		promptColor = color.New(color.FgCyan, color.Bold).SprintFunc()
		accentColor = color.New(color.FgCyan).SprintFunc()
		successColor = color.New(color.FgGreen).SprintFunc()
		mutedColor = color.New(color.FgHiBlack).SprintFunc()
	}

	warnColor = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
	verboseColor = color.New(color.FgYellow, color.Faint).SprintFunc()
}

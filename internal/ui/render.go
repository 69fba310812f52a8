package ui

import (
	"fmt"
)

// Render is the minimal output surface command handlers write to.
// Keeping it an interface lets tests capture output without a terminal.
type Render interface {
	Writeln(args ...interface{})
	Writef(format string, args ...interface{})
	Write(args ...interface{})
}

type StdRenderer struct {
}

func NewStdRenderer() *StdRenderer {
	return &StdRenderer{}
}

func (r *StdRenderer) Writef(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func (r *StdRenderer) Writeln(args ...interface{}) {
	fmt.Println(args...)
}

func (r *StdRenderer) Write(args ...interface{}) {
	fmt.Print(args...)
}

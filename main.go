// File: main.go
package main

import (
	"github.com/maternion/matollama/cmd"
)

func main() {
	cmd.Execute()
}

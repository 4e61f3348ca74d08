// Command simplescript is the SimpleScript interpreter's CLI entry
// point: run a .ss script, or drop into the interactive REPL.
package main

import (
	"os"

	"github.com/LaputanMachines/simplescript/cmd/simplescript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command nilan runs Nilan source files or starts an interactive REPL.
package main

import (
	"nilan/cli"
	"os"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}

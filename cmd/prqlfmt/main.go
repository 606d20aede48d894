// Package main is the prqlfmt command, which renders PRQL syntax tree
// documents back to source text.
package main

import (
	"os"

	"github.com/paulomach/prql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

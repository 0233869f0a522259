// Package main provides the entry point for atelier-cli.
package main

import (
	"fmt"
	"os"

	"github.com/atelierlabs/atelier-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

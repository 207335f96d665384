// Package main is the entry point for the exlogs CLI/TUI.
package main

import (
	"os"

	"github.com/watchfire-io/exlogs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the eartrumpet tray and CLI.
package main

import (
	"os"

	"github.com/eartrumpet-io/eartrumpet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

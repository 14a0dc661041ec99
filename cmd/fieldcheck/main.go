// Package main is the entry point for the fieldcheck CLI.
package main

import (
	"os"

	"github.com/thoreinstein/fieldcheck/cmd/fieldcheck/commands"
	"github.com/thoreinstein/fieldcheck/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.CodeOf(err))
	}
}

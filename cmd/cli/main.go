// Package main is the entry point for the seatquote CLI.
package main

import (
	"os"

	"seatquote/cmd/cli/cmd"
	"seatquote/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}

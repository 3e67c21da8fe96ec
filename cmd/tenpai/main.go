// Package main is the entry point for the tenpai CLI.
package main

import (
	"os"

	"github.com/f3rmion/tenpai/cmd/tenpai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/wonny/tearsheet/cmd/tearsheet/commands"
)

// main is the entry point for the tearsheet CLI: go run ./cmd/tearsheet [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/wonny/tearsheet/backend/cmd/tearsheet/commands"
)

// main is the entry point for the Tearsheet CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/tearsheet [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

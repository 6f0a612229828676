package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/claimscope/claimscope/internal/cli"
)

func main() {
	// Load API keys from a local .env when present; a missing file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the entry point for the polypost CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polypost",
	Short: "Adaptive multilingual publishing pipeline",
	Long:  "Polypost routes content by language, tunes its tone, translates it, builds per-platform variants with voice tags, publishes them, and feeds engagement back into tone strategy.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

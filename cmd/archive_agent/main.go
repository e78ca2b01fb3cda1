// Package main provides the entry point for the archive_agent CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "archive_agent",
	Short: "Archive document harvester and analyst",
	Long:  "archive_agent harvests documents from a paginated web archive, analyzes each one against a research question with an LLM, and synthesizes a corpus-wide research report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

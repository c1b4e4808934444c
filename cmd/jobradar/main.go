// Package main provides the jobradar CLI: remote job scraping, scoring
// and reporting across Brazilian and international platforms.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobradar",
	Short: "Remote job scraper and compatibility scorer",
	Long:  "jobradar searches remote job postings across multiple platforms, filters and deduplicates them, and scores each one against a skill profile to tell you where to apply first.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

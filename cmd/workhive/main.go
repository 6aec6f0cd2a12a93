// Package main provides the entry point for the Work Hive CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "workhive",
	Short: "Work Hive job search platform",
	Long:  "Work Hive tracks job postings and matches them against an uploaded resume. It serves a REST API and provides commands for ingesting postings from job APIs and hosted boards.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

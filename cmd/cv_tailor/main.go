// Package main provides the entry point for the CV tailor CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_tailor",
	Short: "Rule-based CV tailoring",
	Long:  "cv_tailor rewrites a CV against a job posting using deterministic rules: reordering, verb upgrades, and explained suggestions. It never invents experience the CV does not contain.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

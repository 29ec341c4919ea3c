package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/pipeline"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

var parseCVCmd = &cobra.Command{
	Use:   "parse-cv",
	Short: "Parse a CV into structured JSON",
	Long:  "Parse a CV file into a structured profile JSON without tailoring it. Parse issues are reported on stderr; the profile still prints.",
	RunE:  runParseCV,
}

var (
	parseCVInput   string
	parseCVVocab   string
	parseCVVerbose bool
)

func init() {
	parseCVCmd.Flags().StringVarP(&parseCVInput, "in", "i", "", "Path to the CV file (required)")
	parseCVCmd.Flags().StringVar(&parseCVVocab, "vocab", "", "Path to a vocabulary override JSON file merged over the built-in tables")
	parseCVCmd.Flags().BoolVarP(&parseCVVerbose, "verbose", "v", false, "Print a summary box to stderr")
	_ = parseCVCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCVCmd)
}

func runParseCV(_ *cobra.Command, _ []string) error {
	text, err := readDocument(parseCVInput)
	if err != nil {
		return err
	}

	tables, err := vocab.Load(parseCVVocab)
	if err != nil {
		return err
	}

	profile, issues, err := pipeline.New(tables, newLogger(parseCVVerbose)).ReparseCV(text)
	if err != nil {
		return err
	}

	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", issue)
	}

	if parseCVVerbose {
		observability.NewPrinter(os.Stderr).PrintProfile(profile)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/pipeline"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

var parseJDCmd = &cobra.Command{
	Use:   "parse-jd",
	Short: "Parse a job posting into structured JSON",
	Long:  "Parse a job posting from a file or URL into a structured job description JSON: title, company, required and preferred skills, responsibilities.",
	RunE:  runParseJD,
}

var (
	parseJDInput   string
	parseJDURL     string
	parseJDVocab   string
	parseJDVerbose bool
)

func init() {
	parseJDCmd.Flags().StringVarP(&parseJDInput, "in", "i", "", "Path to the posting file (mutually exclusive with --url)")
	parseJDCmd.Flags().StringVar(&parseJDURL, "url", "", "URL to fetch the posting from (mutually exclusive with --in)")
	parseJDCmd.Flags().StringVar(&parseJDVocab, "vocab", "", "Path to a vocabulary override JSON file merged over the built-in tables")
	parseJDCmd.Flags().BoolVarP(&parseJDVerbose, "verbose", "v", false, "Print a summary box to stderr")

	rootCmd.AddCommand(parseJDCmd)
}

func runParseJD(_ *cobra.Command, _ []string) error {
	if parseJDInput != "" && parseJDURL != "" {
		return fmt.Errorf("--in and --url are mutually exclusive")
	}
	if parseJDInput == "" && parseJDURL == "" {
		return fmt.Errorf("must provide either --in or --url")
	}

	var (
		text string
		err  error
	)
	if parseJDInput != "" {
		text, err = readDocument(parseJDInput)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), ingestion.DefaultTimeout)
		defer cancel()
		text, err = ingestion.FetchPosting(ctx, parseJDURL)
	}
	if err != nil {
		return err
	}

	tables, err := vocab.Load(parseJDVocab)
	if err != nil {
		return err
	}

	jd, issues, err := pipeline.New(tables, newLogger(parseJDVerbose)).ReparseJD(text)
	if err != nil {
		return err
	}

	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", issue)
	}

	if parseJDVerbose {
		observability.NewPrinter(os.Stderr).PrintJobDescription(jd)
	}

	data, err := json.MarshalIndent(jd, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job description: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/config"
	"github.com/jonathan/cv-tailor/internal/ingestion"
	"github.com/jonathan/cv-tailor/internal/logger"
	"github.com/jonathan/cv-tailor/internal/observability"
	"github.com/jonathan/cv-tailor/internal/pipeline"
	"github.com/jonathan/cv-tailor/internal/rendering"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Tailor a CV against a job posting",
	Long: `Parses the CV and the job posting, matches skills, applies conservative
rewrites, and prints the tailored result with explanations.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runTailorCmd,
}

var (
	runConfigPath      string
	runCV              string
	runJob             string
	runJobURL          string
	runVocab           string
	runOutput          string
	runVerbose         bool
	runNoBulletRewrite bool
	runNoInjectPrompts bool
	runTopSkills       int
	runMinMatchLen     int
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runCV, "cv", "", "Path to the CV file (txt, md, pdf, docx, html)")
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to job posting file (mutually exclusive with --job-url)")
	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	runCommand.Flags().StringVar(&runVocab, "vocab", "", "Path to a vocabulary override JSON file merged over the built-in tables")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Output format: markdown, text, or json (default markdown)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runNoBulletRewrite, "no-bullet-rewrite", false, "Disable weak verb upgrades in bullet points")
	runCommand.Flags().BoolVar(&runNoInjectPrompts, "no-injection-prompts", false, "Disable skill injection questions")
	runCommand.Flags().IntVar(&runTopSkills, "top-skills", 0, "Skills named in the strategy explanation")
	runCommand.Flags().IntVar(&runMinMatchLen, "min-match-len", 0, "Minimum token length for substring skill matches")

	rootCmd.AddCommand(runCommand)
}

func runTailorCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.CV == "" {
		return fmt.Errorf("a CV is required (use --cv)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("a job posting is required (use --job or --job-url)")
	}

	cvText, err := readDocument(cfg.CV)
	if err != nil {
		return err
	}

	jdText, err := readPosting(cfg)
	if err != nil {
		return err
	}

	opts := pipeline.DefaultOptions()
	if cfg.NoBulletRewrite {
		opts.EnableBulletRewrite = false
	}
	if cfg.NoInjectionPrompts {
		opts.EnableSkillInjectionPrompts = false
	}
	if cfg.TopSkills > 0 {
		opts.TopNStrategySkills = cfg.TopSkills
	}
	if cfg.MinMatchLen > 0 {
		opts.MinSubstringMatchLen = cfg.MinMatchLen
	}

	tables, err := vocab.Load(cfg.Vocab)
	if err != nil {
		return err
	}

	result, err := pipeline.New(tables, newLogger(cfg.Verbose)).Tailor(cvText, jdText, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintProfile(result.Draft)
		printer.PrintMatchSummary(result.Summary)
		printer.PrintSuggestions(result.Suggestions)
		printer.PrintNotices(result.Notices)
	}

	switch cfg.Output {
	case "", config.OutputMarkdown:
		fmt.Print(rendering.RenderMarkdown(result))
	case config.OutputText:
		fmt.Print(rendering.RenderPlainText(result))
	case config.OutputJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Output)
	}

	return nil
}

// loadRunConfig merges the optional config file with CLI overrides.
// Flags that were explicitly set take priority.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("cv") {
		cfg.CV = runCV
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = runJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if cmd.Flags().Changed("vocab") {
		cfg.Vocab = runVocab
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("top-skills") {
		cfg.TopSkills = runTopSkills
	}
	if cmd.Flags().Changed("min-match-len") {
		cfg.MinMatchLen = runMinMatchLen
	}
	if runVerbose {
		cfg.Verbose = true
	}
	if runNoBulletRewrite {
		cfg.NoBulletRewrite = true
	}
	if runNoInjectPrompts {
		cfg.NoInjectionPrompts = true
	}

	if cfg.Job != "" && cfg.JobURL != "" {
		return cfg, fmt.Errorf("--job and --job-url are mutually exclusive")
	}

	return cfg, nil
}

// readDocument reads a local file and extracts its text.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := ingestion.ExtractText(path, data)
	if err != nil {
		return "", err
	}
	return text, nil
}

// readPosting loads the job posting from a file or fetches it from a URL.
func readPosting(cfg config.Config) (string, error) {
	if cfg.Job != "" {
		return readDocument(cfg.Job)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestion.DefaultTimeout)
	defer cancel()
	return ingestion.FetchPosting(ctx, cfg.JobURL)
}

// newLogger returns a zap logger matching the verbosity level. Quiet runs
// get a no-op logger so pipeline output stays clean.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := logger.New(false, true)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

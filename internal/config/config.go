// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Inputs
	CV     string `json:"cv,omitempty"`      // Path to the CV file (txt, md, pdf, docx, html)
	Job    string `json:"job,omitempty"`     // Path to the job posting file
	JobURL string `json:"job_url,omitempty"` // URL to fetch the job posting from
	Vocab  string `json:"vocab,omitempty"`   // Path to a vocabulary override JSON file

	// Output
	Output  string `json:"output,omitempty"` // Output format: markdown, text, or json
	Verbose bool   `json:"verbose,omitempty"`

	// Tailoring behavior
	NoBulletRewrite    bool `json:"no_bullet_rewrite,omitempty"`    // Disable verb upgrades
	NoInjectionPrompts bool `json:"no_injection_prompts,omitempty"` // Disable skill injection questions
	TopSkills          int  `json:"top_skills,omitempty"`           // Skills named in the strategy explanation
	MinMatchLen        int  `json:"min_match_len,omitempty"`        // Minimum token length for substring skill matches

	// Server
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port
}

// Output format values accepted by the CLI and the export endpoint.
const (
	OutputMarkdown = "markdown"
	OutputText     = "text"
	OutputJSON     = "json"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.TopSkills < 0 {
		return fmt.Errorf("config error: 'top_skills' must be non-negative")
	}
	if c.MinMatchLen < 0 {
		return fmt.Errorf("config error: 'min_match_len' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	switch c.Output {
	case "", OutputMarkdown, OutputText, OutputJSON:
	default:
		return fmt.Errorf("config error: unknown output format: %s", c.Output)
	}

	if c.CV != "" {
		if _, err := os.Stat(c.CV); os.IsNotExist(err) {
			return fmt.Errorf("config error: cv file not found: %s", c.CV)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Vocab != "" {
		if _, err := os.Stat(c.Vocab); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocab file not found: %s", c.Vocab)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.CV == "" {
		result.CV = defaults.CV
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Vocab == "" {
		result.Vocab = defaults.Vocab
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.TopSkills == 0 {
		result.TopSkills = defaults.TopSkills
	}
	if result.MinMatchLen == 0 {
		result.MinMatchLen = defaults.MinMatchLen
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

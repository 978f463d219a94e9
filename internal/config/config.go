// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Job      string `json:"job,omitempty"`      // Path to job posting text file
	JobURL   string `json:"job_url,omitempty"`  // URL to fetch job posting from
	Skills   string `json:"skills,omitempty"`   // Path to the skill synonym map JSON
	Snippets string `json:"snippets,omitempty"` // Path to the snippets JSONL file
	Profile  string `json:"profile,omitempty"`  // Path to the master profile JSON

	// Limits
	TopKeywords int `json:"top_keywords,omitempty"` // Number of keywords kept per record
	TopK        int `json:"top_k,omitempty"`        // Number of snippets retrieved per query

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	Port        int    `json:"port,omitempty"`         // HTTP server port
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.TopKeywords < 0 {
		return fmt.Errorf("config error: 'top_keywords' must be non-negative")
	}
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}

	// Validate file paths exist (if specified)
	for _, p := range []struct{ name, path string }{
		{"job", c.Job},
		{"skills", c.Skills},
		{"snippets", c.Snippets},
		{"profile", c.Profile},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", p.name, p.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Skills == "" {
		result.Skills = defaults.Skills
	}
	if result.Snippets == "" {
		result.Snippets = defaults.Snippets
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.TopKeywords == 0 {
		result.TopKeywords = defaults.TopKeywords
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: true in either wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

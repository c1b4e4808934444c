// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/nanotecnologista/jobradar/internal/types"
)

// Config holds everything the scraping and analysis core consumes. It is
// passed explicitly to constructors; there is no global settings object.
// All fields are optional in the JSON file; missing values use defaults.
type Config struct {
	// Platforms to scrape, in registry order.
	Platforms []string `json:"platforms,omitempty"`

	// JobType selects the keyword list used for searching and filtering.
	JobType string `json:"job_type,omitempty"`

	// Politeness and transport limits.
	DelayMinSeconds float64 `json:"delay_min_seconds,omitempty" validate:"gte=0"`
	DelayMaxSeconds float64 `json:"delay_max_seconds,omitempty" validate:"gte=0"`
	MaxRetries      int     `json:"max_retries,omitempty" validate:"gte=0,lte=10"`
	MaxPages        int     `json:"max_pages,omitempty" validate:"gte=0,lte=20"`
	MaxConcurrency  int     `json:"max_concurrency,omitempty" validate:"gte=0,lte=16"`
	TimeoutSeconds  int     `json:"timeout_seconds,omitempty" validate:"gte=0,lte=300"`

	// Search keyword lists keyed by job type (e.g. "dev", "admin").
	JobTypes map[string][]string `json:"job_types,omitempty"`

	// Blacklists applied by the filter chain and the scoring engine.
	BlacklistCompanies []string `json:"blacklist_companies,omitempty"`
	BlacklistKeywords  []string `json:"blacklist_keywords,omitempty"`

	// PlatformConfigDir holds declarative JSON configs for generic scrapers.
	PlatformConfigDir string `json:"platform_config_dir,omitempty"`

	// TopN bounds the aggregator's top-postings summary.
	TopN int `json:"top_n,omitempty" validate:"gte=0,lte=100"`

	// Behavior flags.
	Debug   bool `json:"debug,omitempty"`   // run browsers headful for interactive debugging
	Verbose bool `json:"verbose,omitempty"` // print detailed progress

	// Credentials per platform, loaded from the environment, never from file.
	Credentials map[string]types.Credentials `json:"-"`
}

// DefaultConfig returns the built-in defaults mirroring a conservative
// scraping posture: short page bounds, a small worker pool, polite delays.
func DefaultConfig() Config {
	return Config{
		Platforms:       []string{"gupy", "catho", "linkedin", "himalayas", "remotar", "querohome"},
		JobType:         "dev",
		DelayMinSeconds: 1,
		DelayMaxSeconds: 5,
		MaxRetries:      3,
		MaxPages:        3,
		MaxConcurrency:  3,
		TimeoutSeconds:  30,
		TopN:            10,
		JobTypes: map[string][]string{
			"dev":   {"python", "javascript", "typescript", "backend", "go", "salesforce", "apex"},
			"admin": {"call center", "assistente administrativo", "suporte", "customer service"},
		},
		BlacklistKeywords: []string{"100% comissionado", "sem clt"},
		Credentials:       map[string]types.Credentials{},
	}
}

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

// LoadCredentialsFromEnv reads per-platform credentials from the
// environment (GUPY_EMAIL, GUPY_PASSWORD, ...). Platforms without
// credentials are simply absent from the map; scrapers that need no login
// work regardless. A few scraping limits may also be overridden from the
// environment for parity with .env-driven deployments.
func (c *Config) LoadCredentialsFromEnv() {
	if c.Credentials == nil {
		c.Credentials = make(map[string]types.Credentials)
	}
	for _, platform := range c.Platforms {
		prefix := envPrefix(platform)
		email := os.Getenv(prefix + "_EMAIL")
		password := os.Getenv(prefix + "_PASSWORD")
		if email != "" || password != "" {
			c.Credentials[platform] = types.Credentials{Email: email, Password: password}
		}
	}
	if v := os.Getenv("SCRAPING_DELAY_MIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.DelayMinSeconds = f
		}
	}
	if v := os.Getenv("SCRAPING_DELAY_MAX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.DelayMaxSeconds = f
		}
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
}

func envPrefix(platform string) string {
	out := make([]rune, 0, len(platform))
	for _, r := range platform {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-('a'-'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.DelayMaxSeconds < c.DelayMinSeconds {
		return fmt.Errorf("config error: 'delay_max_seconds' must be >= 'delay_min_seconds'")
	}
	if c.JobType != "" {
		if _, ok := c.JobTypes[c.JobType]; !ok {
			return fmt.Errorf("config error: unknown job type %q", c.JobType)
		}
	}
	if c.PlatformConfigDir != "" {
		if _, err := os.Stat(c.PlatformConfigDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: platform config dir not found: %s", c.PlatformConfigDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Platforms) == 0 {
		result.Platforms = defaults.Platforms
	}
	if result.JobType == "" {
		result.JobType = defaults.JobType
	}
	if result.DelayMinSeconds == 0 {
		result.DelayMinSeconds = defaults.DelayMinSeconds
	}
	if result.DelayMaxSeconds == 0 {
		result.DelayMaxSeconds = defaults.DelayMaxSeconds
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = defaults.MaxConcurrency
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if len(result.JobTypes) == 0 {
		result.JobTypes = defaults.JobTypes
	}
	if result.BlacklistKeywords == nil {
		result.BlacklistKeywords = defaults.BlacklistKeywords
	}
	if result.BlacklistCompanies == nil {
		result.BlacklistCompanies = defaults.BlacklistCompanies
	}
	if result.Credentials == nil {
		result.Credentials = map[string]types.Credentials{}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Keywords returns the search keyword list for a job type, or nil when unknown.
func (c *Config) Keywords(jobType string) []string {
	return c.JobTypes[jobType]
}

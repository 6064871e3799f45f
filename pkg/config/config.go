package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".jira-csv.yml"

// Config holds everything the uploader needs: where the Jira server is, how to
// authenticate, and how the upload pipeline should behave.
type Config struct {
	Jira   JiraConfig   `yaml:"jira"`
	Upload UploadConfig `yaml:"upload"`
}

// JiraConfig represents Jira connection settings. The API token is never
// written to the config file; it is taken from the environment only.
type JiraConfig struct {
	BaseURL string `yaml:"base_url"`
	Email   string `yaml:"email"`
	Token   string `yaml:"-"`
}

// UploadConfig represents upload pipeline settings.
type UploadConfig struct {
	CSVPath           string `yaml:"csv_path,omitempty"`
	RetryAttempts     int    `yaml:"retry_attempts"`
	RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
}

// DefaultConfig returns a configuration with pipeline defaults filled in.
func DefaultConfig() *Config {
	return &Config{
		Upload: UploadConfig{
			CSVPath:           "data/issues.csv",
			RetryAttempts:     3,
			RetryDelaySeconds: 5,
		},
	}
}

// Load builds the effective configuration: defaults, then the nearest
// .jira-csv.yml (searched upward from the working directory), then
// environment variables. A missing config file is not an error; credentials
// frequently come from the environment alone.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path := findConfigFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.Jira.BaseURL = strings.TrimRight(cfg.Jira.BaseURL, "/")

	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	if v := os.Getenv("JIRA_BASE_URL"); v != "" {
		c.Jira.BaseURL = v
	}
	if v := os.Getenv("JIRA_EMAIL"); v != "" {
		c.Jira.Email = v
	}
	if v := os.Getenv("JIRA_API_TOKEN"); v != "" {
		c.Jira.Token = v
	}
	if v := os.Getenv("DEFAULT_CSV_PATH"); v != "" {
		c.Upload.CSVPath = v
	}
	if v, err := strconv.Atoi(os.Getenv("RETRY_ATTEMPTS")); err == nil {
		c.Upload.RetryAttempts = v
	}
	if v, err := strconv.Atoi(os.Getenv("RETRY_DELAY")); err == nil {
		c.Upload.RetryDelaySeconds = v
	}
}

// Validate checks that the configuration is usable for talking to Jira.
func (c *Config) Validate() error {
	if c.Jira.BaseURL == "" {
		return fmt.Errorf("jira base URL is required (set jira.base_url or JIRA_BASE_URL)")
	}
	if c.Jira.Email == "" {
		return fmt.Errorf("jira email is required (set jira.email or JIRA_EMAIL)")
	}
	if c.Jira.Token == "" {
		return fmt.Errorf("jira API token is required (set JIRA_API_TOKEN)")
	}
	if c.Upload.RetryAttempts < 1 {
		return fmt.Errorf("retry_attempts must be at least 1, got %d", c.Upload.RetryAttempts)
	}
	if c.Upload.RetryDelaySeconds < 0 {
		return fmt.Errorf("retry_delay_seconds must not be negative, got %d", c.Upload.RetryDelaySeconds)
	}
	return nil
}

// RetryDelay returns the configured base backoff delay as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Upload.RetryDelaySeconds) * time.Second
}

// Save writes the configuration to the given path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in current and parent directories
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Exists checks if configuration file exists
func Exists() bool {
	return findConfigFile() != ""
}

// Package config loads CIViC endpoint settings from an optional config
// file and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Env var names. If set, they override config file values.
const (
	EnvBaseURL        = "CIVIC_MCP_BASE_URL"
	EnvTimeoutSeconds = "CIVIC_MCP_TIMEOUT_SECONDS"
	EnvMaxResults     = "CIVIC_MCP_MAX_RESULTS"
	EnvPageSize       = "CIVIC_MCP_PAGE_SIZE"
)

// DefaultConfigDir is the directory for the optional config file.
// Config file path: ~/.civic-mcp/config.yaml
const DefaultConfigDir = ".civic-mcp"
const ConfigFileName = "config.yaml"

// Defaults match the public CIViC API and its documented result cap.
const (
	DefaultBaseURL    = "https://civicdb.org/api/graphql"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxResults = 100
	DefaultPageSize   = 25
)

// Config holds the remote endpoint settings.
type Config struct {
	// BaseURL is the GraphQL endpoint queries are POSTed to.
	BaseURL string
	// Timeout bounds each outbound call.
	Timeout time.Duration
	// MaxResults caps the page size of any built query.
	MaxResults int
	// PageSize is the result count used when a caller does not ask
	// for one.
	PageSize int
}

// Load reads configuration from ~/.civic-mcp/config.yaml if present,
// then applies env overrides. Missing file and missing vars fall back
// to defaults.
func Load() (*Config, error) {
	c := &Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxResults: DefaultMaxResults,
		PageSize:   DefaultPageSize,
	}

	path, err := configFilePath()
	if err != nil {
		return nil, fmt.Errorf("config path: %w", err)
	}
	if path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if c.MaxResults < 1 {
		return nil, fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.PageSize < 1 {
		return nil, fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	return c, nil
}

func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(home, DefaultConfigDir, ConfigFileName)
	_, err = os.Stat(p)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p, nil
}

type fileFormat struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxResults     int    `yaml:"max_results"`
	PageSize       int    `yaml:"page_size"`
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.MaxResults > 0 {
		c.MaxResults = f.MaxResults
	}
	if f.PageSize > 0 {
		c.PageSize = f.PageSize
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 1 {
			return fmt.Errorf("%s: expected positive integer, got %q", EnvTimeoutSeconds, v)
		}
		c.Timeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv(EnvMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: expected positive integer, got %q", EnvMaxResults, v)
		}
		c.MaxResults = n
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: expected positive integer, got %q", EnvPageSize, v)
		}
		c.PageSize = n
	}
	return nil
}

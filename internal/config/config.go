// Package config loads the dashboard configuration from config.yaml with
// environment-variable overrides for deployment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Source modes.
const (
	SourceLocal  = "LOCAL"
	SourceGitHub = "GITHUB"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
		// AllowOrigins lists CORS origins. Entries starting with "."
		// match any origin host with that suffix (e.g. ".vercel.app").
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"server"`

	Source struct {
		Mode   string `yaml:"mode"`    // LOCAL or GITHUB
		CSVDir string `yaml:"csv_dir"` // LOCAL: directory holding the trade-log CSVs
		GitHub struct {
			Owner    string `yaml:"owner"`
			Repo     string `yaml:"repo"`
			Path     string `yaml:"path"` // directory inside the repo
			Ref      string `yaml:"ref"`  // branch/tag, empty for default
			TokenEnv string `yaml:"token_env"`
		} `yaml:"github"`
	} `yaml:"source"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Source.Mode {
	case SourceLocal:
		if c.Source.CSVDir == "" {
			return fmt.Errorf("source.csv_dir is required in LOCAL mode")
		}
	case SourceGitHub:
		if c.Source.GitHub.Owner == "" || c.Source.GitHub.Repo == "" {
			return fmt.Errorf("source.github.owner and source.github.repo are required in GITHUB mode")
		}
	default:
		return fmt.Errorf("invalid source.mode '%s': must be 'LOCAL' or 'GITHUB'", c.Source.Mode)
	}
	return nil
}

// LoadConfig reads path, applies defaults and env overrides, and validates.
// A missing file is not an error: the defaults describe a local ./trades
// directory, matching a bare checkout.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to defaults
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"http://localhost:3000", ".vercel.app"}
	}
	if c.Source.Mode == "" {
		c.Source.Mode = SourceLocal
	}
	if c.Source.CSVDir == "" {
		c.Source.CSVDir = "trades"
	}
	if c.Source.GitHub.TokenEnv == "" {
		c.Source.GitHub.TokenEnv = "GITHUB_TOKEN"
	}

	// Deployment overrides.
	if v := os.Getenv("CSV_DIR"); v != "" {
		c.Source.CSVDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT '%s': %w", v, err)
		}
		c.Server.Port = port
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// GitHubToken resolves the configured token env var, empty when unset.
func (c *Config) GitHubToken() string {
	return os.Getenv(c.Source.GitHub.TokenEnv)
}

// Package config handles loading and saving user configuration for tenpai.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/tenpai/internal/mahjong"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Oracle  OracleConfig  `yaml:"oracle"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	History HistoryConfig `yaml:"history"`
}

// RulesConfig holds the table winds used to build the base scenario.
type RulesConfig struct {
	SeatWind  string `yaml:"seat_wind"`  // east, south, west, north
	RoundWind string `yaml:"round_wind"` // east, south, west, north
}

// OracleConfig points at the scoring service.
type OracleConfig struct {
	URL        string `yaml:"url"`
	ShantenURL string `yaml:"shanten_url,omitempty"` // defaults to URL
	Timeout    string `yaml:"timeout"`               // Go duration, per call
}

// SearchConfig tunes the tenpai search.
type SearchConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig sizes the in-memory oracle cache. Zero disables it.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// HistoryConfig controls the analysis history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // defaults to history.db in the config dir
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			SeatWind:  "east",
			RoundWind: "east",
		},
		Oracle: OracleConfig{
			URL:     "http://127.0.0.1:8000",
			Timeout: "5s",
		},
		Search:  SearchConfig{Workers: 8},
		Cache:   CacheConfig{Size: 4096},
		History: HistoryConfig{Enabled: true},
	}
}

// Load reads the config file at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later.
func (c *Config) Validate() error {
	if _, err := c.Scenario(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Oracle.URL) == "" {
		return errors.New("oracle.url is required")
	}
	if _, err := c.OracleTimeout(); err != nil {
		return err
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be at least 1, got %d", c.Search.Workers)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}

// Scenario builds the base rule scenario from the configured winds.
func (c *Config) Scenario() (mahjong.Scenario, error) {
	seat, err := mahjong.ParseWind(c.Rules.SeatWind)
	if err != nil {
		return mahjong.Scenario{}, fmt.Errorf("rules.seat_wind: %w", err)
	}
	round, err := mahjong.ParseWind(c.Rules.RoundWind)
	if err != nil {
		return mahjong.Scenario{}, fmt.Errorf("rules.round_wind: %w", err)
	}
	return mahjong.DefaultScenario().WithSeatWind(seat).WithRoundWind(round), nil
}

// OracleTimeout parses the per-call oracle timeout.
func (c *Config) OracleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Oracle.Timeout)
	if err != nil {
		return 0, fmt.Errorf("oracle.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("oracle.timeout must be positive, got %s", d)
	}
	return d, nil
}

// HistoryPath resolves the history database location.
func (c *Config) HistoryPath(configDir string) string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(configDir, "history.db")
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tenpai"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

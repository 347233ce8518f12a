package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		Override string   `yaml:"override"`
		Bases    []string `yaml:"bases"`
		Days     int      `yaml:"days"`
		Universe string   `yaml:"universe"`
		Ticker   string   `yaml:"ticker"` // default ticker on load
	} `yaml:"api"`
	State struct {
		File string `yaml:"file"` // remembered API base
	} `yaml:"state"`
	Watchlist struct {
		File       string `yaml:"file"`
		SQLitePath string `yaml:"sqlite_path"` // when set, sqlite store is used instead of the JSON file
	} `yaml:"watchlist"`
	Server struct {
		Addr        string `yaml:"addr"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("IDX_API_BASE"); v != "" {
		cfg.API.Override = v
	}
	if v := os.Getenv("IDX_API_BASES"); v != "" {
		cfg.API.Bases = splitList(v)
	}
	if v := os.Getenv("IDX_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.Days = n
		}
	}
	if v := os.Getenv("IDX_UNIVERSE"); v != "" {
		cfg.API.Universe = v
	}
	if v := os.Getenv("IDX_STATE_FILE"); v != "" {
		cfg.State.File = v
	}
	if v := os.Getenv("IDX_WATCHLIST_FILE"); v != "" {
		cfg.Watchlist.File = v
	}
	if v := os.Getenv("IDX_SQLITE_PATH"); v != "" {
		cfg.Watchlist.SQLitePath = v
	}
	if v := os.Getenv("IDX_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.API.Days == 0 {
		cfg.API.Days = 260
	}
	if cfg.API.Universe == "" {
		cfg.API.Universe = "LQ45"
	}
	if cfg.API.Ticker == "" {
		cfg.API.Ticker = "BBRI"
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/app_state.json"
	}
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "data/watchlist.json"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8087"
	}
	if cfg.Server.RefreshCron == "" {
		cfg.Server.RefreshCron = "0 */10 * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are well-formed.
func (c *Config) Validate() error {
	if c.API.Days < 30 || c.API.Days > 520 {
		return fmt.Errorf("api.days must be within 30..520, got %d", c.API.Days)
	}
	if c.API.Override != "" && !isHTTPURL(c.API.Override) {
		return fmt.Errorf("api.override %q is not an http(s) URL", c.API.Override)
	}
	for _, b := range c.API.Bases {
		if !isHTTPURL(b) {
			return fmt.Errorf("api.bases entry %q is not an http(s) URL", b)
		}
	}
	return nil
}

func isHTTPURL(b string) bool {
	return strings.HasPrefix(b, "http://") || strings.HasPrefix(b, "https://")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

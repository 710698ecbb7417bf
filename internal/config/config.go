package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultScanInterval is the cron spec for the reminder scan when the
// config does not override it.
const DefaultScanInterval = "@every 10s"

// Config represents the flat partflow configuration.
type Config struct {
	Version      string `json:"version"`
	ShopName     string `json:"shop_name,omitempty"`
	DBPath       string `json:"db_path,omitempty"`       // empty: ~/.partflow/partflow.db
	ScanInterval string `json:"scan_interval,omitempty"` // cron spec for the reminder scan
}

// ScanSpec returns the configured reminder-scan interval, falling back
// to the default.
func (c *Config) ScanSpec() string {
	if c.ScanInterval == "" {
		return DefaultScanInterval
	}
	return c.ScanInterval
}

// Dir returns the partflow settings directory under the user's home.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".partflow"), nil
}

// LoadConfig reads config.json from the given directory. Returns an
// error if no config is found; callers decide whether that means "run
// partflow init first" or "use defaults".
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes config.json to the given directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

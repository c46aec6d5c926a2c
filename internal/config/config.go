// Package config loads and saves backpack settings and reference tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all backpack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Styles     StyleOverrides   `toml:"styles"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	ActiveTrip string `toml:"active_trip,omitempty"`
	Currency   string `toml:"currency"`
	DBPath     string `toml:"db_path,omitempty"`
}

// DefaultsConfig holds the values a freshly added day or trip starts with.
type DefaultsConfig struct {
	TransportType     string  `toml:"transport_type"`
	AccommodationType string  `toml:"accommodation_type"`
	TotalBudget       float64 `toml:"total_budget"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
	Emoji bool   `toml:"emoji"`
}

// ServerConfig holds settings for `backpack serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StyleOverrides allows user-defined daily ranges for travel styles.
type StyleOverrides struct {
	Overrides map[string]StyleRateOverride `toml:"overrides,omitempty"`
}

// StyleRateOverride holds per-style daily range overrides.
type StyleRateOverride struct {
	DailyLow  *float64 `toml:"daily_low,omitempty"`
	DailyHigh *float64 `toml:"daily_high,omitempty"`
}

// DefaultServerAddr is the listen address used when none is configured.
const DefaultServerAddr = "127.0.0.1:8797"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "GBP",
		},
		Defaults: DefaultsConfig{
			TransportType:     "Bus",
			AccommodationType: "Hostel",
			TotalBudget:       500,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
			Emoji: true,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "backpack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "backpack")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the trip database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "backpack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "backpack")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is chosen by the local user
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFrom
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetDBPath returns the database path from env var, config, or the data dir, in that order.
func GetDBPath(cfg Config) string {
	if p := os.Getenv("BACKPACK_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "trips.db")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

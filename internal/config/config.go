package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "coop.yaml"

// Config represents the top-level coop.yaml configuration.
type Config struct {
	Cooperative CooperativeConfig `yaml:"cooperative"`
	Reports     ReportsConfig     `yaml:"reports"`
	Display     DisplayConfig     `yaml:"display"`
}

// CooperativeConfig identifies the cooperative. Both fields are fixed for
// the lifetime of a session.
type CooperativeConfig struct {
	Name    string `yaml:"name" env:"COOP_NAME"`
	Address string `yaml:"address" env:"COOP_ADDRESS"`
}

// ReportsConfig tunes the report menu entries.
type ReportsConfig struct {
	BalanceThreshold decimal.Decimal `yaml:"balance_threshold" env:"COOP_BALANCE_THRESHOLD"`
}

// DisplayConfig controls how amounts are rendered to the terminal.
type DisplayConfig struct {
	DecimalPlaces int32 `yaml:"decimal_places"`
}

// Load reads a coop.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(DefaultName, DefaultAddress), nil
	}
	return cfg, err
}

// ApplyEnv overrides cfg with any COOP_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Cooperative.Name == "":
		return errors.New("cooperative.name is required")
	case c.Cooperative.Address == "":
		return errors.New("cooperative.address is required")
	case c.Reports.BalanceThreshold.IsNegative():
		return fmt.Errorf("reports.balance_threshold must not be negative, got %s", c.Reports.BalanceThreshold)
	case c.Display.DecimalPlaces < 0 || c.Display.DecimalPlaces > 10:
		return fmt.Errorf("display.decimal_places must be between 0 and 10, got %d", c.Display.DecimalPlaces)
	}
	return nil
}

// Defaults used when no configuration file exists.
const (
	DefaultName    = "Cooperative"
	DefaultAddress = "Unknown address"
)

// Default returns a Config with sensible defaults for a new cooperative.
func Default(name, address string) *Config {
	return &Config{
		Cooperative: CooperativeConfig{
			Name:    name,
			Address: address,
		},
		Reports: ReportsConfig{
			BalanceThreshold: decimal.NewFromInt(500000),
		},
		Display: DisplayConfig{
			DecimalPlaces: 2,
		},
	}
}

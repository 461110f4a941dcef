package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Months is the calendar heatmap horizon.
	Months int `mapstructure:"months" yaml:"months"`
	// RangeDays is the day-range window size (15, 30, 60 or 90).
	RangeDays int `mapstructure:"range_days" yaml:"range_days"`
	// TopN is the ranked outreach list length.
	TopN int `mapstructure:"top_n" yaml:"top_n"`
	// AsOf pins the reference date (YYYY-MM-DD); empty means wall clock.
	AsOf string `mapstructure:"as_of" yaml:"as_of"`
	// Format is the default output encoding: json or yaml.
	Format string `mapstructure:"format" yaml:"format"`
	// Sheet selects the XLSX worksheet by name; empty means the first sheet.
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.bundlebench/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".bundlebench")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("BUNDLEBENCH")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("months", 12)
	v.SetDefault("range_days", 30)
	v.SetDefault("top_n", 10)
	v.SetDefault("as_of", "")
	v.SetDefault("format", "json")
	v.SetDefault("sheet", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".bundlebench")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

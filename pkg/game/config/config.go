// Package config loads the preview tool's settings from YAML files and
// DERELICT_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full tool configuration.
type Config struct {
	Generation GenerationConfig `mapstructure:"generation"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// GenerationConfig carries the default generation parameters. Tier 0
// means derive tier and faction from the distance factor.
type GenerationConfig struct {
	Tier     int     `mapstructure:"tier"`
	Faction  string  `mapstructure:"faction"`
	Class    string  `mapstructure:"class"`
	Seed     int64   `mapstructure:"seed"`
	Distance float64 `mapstructure:"distance"`
}

// CatalogConfig points at the content catalog. An empty Dir uses the
// built-in catalog.
type CatalogConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given YAML file, applies environment
// variable overrides, and validates the result. An empty path looks for
// derelict.yaml in the working directory and falls back to defaults when
// no file exists.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("DERELICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("derelict")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section and reports the first problem found.
func (c Config) Validate() error {
	if c.Generation.Tier < 0 || c.Generation.Tier > 5 {
		return fmt.Errorf("generation.tier must be 0 (auto) or 1-5, got %d", c.Generation.Tier)
	}
	if c.Generation.Distance < 0 || c.Generation.Distance > 1 {
		return fmt.Errorf("generation.distance must be in [0,1], got %v", c.Generation.Distance)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generation.tier", 0)
	v.SetDefault("generation.faction", "")
	v.SetDefault("generation.class", "")
	v.SetDefault("generation.seed", 0)
	v.SetDefault("generation.distance", 0.3)

	v.SetDefault("catalog.dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

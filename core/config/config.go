// Package config loads operator settings for wikitables from flags,
// WIKITABLES_* environment variables and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "WIKITABLES"

// DefaultUserAgent identifies the tool to Wikipedia. Operators are expected
// to replace the contact details with their own.
const DefaultUserAgent = "WikipediaTableCleaner/1.1 (https://example.com/bot; myemail@example.com)"

// Config holds settings that apply to every URL of an invocation.
type Config struct {
	UserAgent    string        `mapstructure:"user_agent" validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxBodySize  string        `mapstructure:"max_body_size"`
	EmptyMarkers []string      `mapstructure:"empty_markers"`

	OutputDir string `mapstructure:"output_dir"`
	Format    string `mapstructure:"format"`
	Class     string `mapstructure:"class"`

	Debug   bool `mapstructure:"debug"`
	Quiet   bool `mapstructure:"quiet"`
	LogJSON bool `mapstructure:"log_json"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("max_body_size", "32MB")
	v.SetDefault("empty_markers", []string{})
	v.SetDefault("output_dir", ".")
	v.SetDefault("format", "csv")
	v.SetDefault("class", "wikitable")
}

// ReadFile points v at cfgFile, or at .wikitables.yaml in $HOME or the
// working directory, and reads it. A missing default file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(".wikitables")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.BodyLimit(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BodyLimit returns MaxBodySize in bytes. Empty or "0" means unlimited.
func (c Config) BodyLimit() (int, error) {
	if c.MaxBodySize == "" || c.MaxBodySize == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 0, fmt.Errorf("invalid max_body_size %q: %w", c.MaxBodySize, err)
	}
	return int(n), nil
}

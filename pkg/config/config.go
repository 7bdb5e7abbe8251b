// Package config loads pfdcheck settings from pfdcheck.yaml and PFDCHECK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/chemistry"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/logging"
	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/validation"
)

const (
	// FileName is looked up in the working directory when no path is given
	FileName  = "pfdcheck"
	EnvPrefix = "PFDCHECK"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	formats   = []string{FormatText, FormatJSON}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config holds the settings shared by the binaries
type Config struct {
	LogLevel       string `mapstructure:"log_level"`
	Format         string `mapstructure:"format"`
	CatalogPath    string `mapstructure:"catalog"`
	MetricsFile    string `mapstructure:"metrics_file"`
	DownstreamOnly bool   `mapstructure:"downstream_only"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Format:   FormatText,
	}
}

// Load reads path, or pfdcheck.yaml from the working directory when path is
// empty. A missing pfdcheck.yaml is not an error; a missing explicit path is.
// Environment variables override the file.
func Load(path string) (*Config, error) {
	def := Default()
	v := viper.New()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("format", def.Format)
	v.SetDefault("catalog", def.CatalogPath)
	v.SetDefault("metrics_file", def.MetricsFile)
	v.SetDefault("downstream_only", def.DownstreamOnly)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Format = validation.DefaultOr(cfg.Format, def.Format)
	cfg.LogLevel = validation.DefaultOr(cfg.LogLevel, def.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	return validation.NewConfigValidator("config").
		OneOf("format", c.Format, formats).
		OneOf("log_level", c.LogLevel, logLevels).
		When(c.CatalogPath != "", func(cv *validation.ConfigValidator) {
			cv.Custom("catalog", func() error {
				_, err := os.Stat(c.CatalogPath)
				return err
			})
		}).
		Validate()
}

// Logger returns a JSON logger at the configured level
func (c *Config) Logger(w io.Writer) logging.Logger {
	return logging.NewJSONLogger(w, logging.ParseLevel(c.LogLevel))
}

// Catalog loads CatalogPath, or returns the built-in catalog when it is unset
func (c *Config) Catalog() (*chemistry.Catalog, error) {
	if c.CatalogPath == "" {
		return chemistry.Default(), nil
	}
	return chemistry.LoadFile(c.CatalogPath)
}

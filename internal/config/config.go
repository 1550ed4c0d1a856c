// Package config loads the application configuration from a YAML file and
// LIPYANTAR_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds lipyantar configuration.
// Stored at: ./lipyantar.yaml or ~/.lipyantar/lipyantar.yaml
type Config struct {
	Converter ConverterCfg `mapstructure:"converter" yaml:"converter"`
	OCR       OCRCfg       `mapstructure:"ocr" yaml:"ocr"`
	Detector  DetectorCfg  `mapstructure:"detector" yaml:"detector"`
	Store     StoreCfg     `mapstructure:"store" yaml:"store"`
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
}

// ConverterCfg configures the transliteration engine client.
type ConverterCfg struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OCRCfg configures the Tesseract engine.
type OCRCfg struct {
	Languages string `mapstructure:"languages" yaml:"languages"` // "+"-joined, e.g. "hin+eng"
}

// DetectorCfg selects the language detector.
type DetectorCfg struct {
	Provider    string `mapstructure:"provider" yaml:"provider"` // "lingua" or "google"
	Credentials string `mapstructure:"credentials" yaml:"credentials"`
}

// StoreCfg configures the transliteration memory database.
type StoreCfg struct {
	Path     string `mapstructure:"path" yaml:"path"`
	Disabled bool   `mapstructure:"disabled" yaml:"disabled"`
}

// ServerCfg configures the HTTP API.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Converter: ConverterCfg{
			BaseURL: "https://aksharamukha-plugin.appspot.com",
			Timeout: 30 * time.Second,
		},
		OCR: OCRCfg{
			Languages: "hin+eng",
		},
		Detector: DetectorCfg{
			Provider: "lingua",
		},
		Store: StoreCfg{
			Path: "lipyantar.db",
		},
		Server: ServerCfg{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// Load initializes viper and parses the configuration. A missing config file
// is not an error; defaults and environment variables apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("converter", defaults.Converter)
	v.SetDefault("ocr", defaults.OCR)
	v.SetDefault("detector", defaults.Detector)
	v.SetDefault("store", defaults.Store)
	v.SetDefault("server", defaults.Server)

	v.SetEnvPrefix("LIPYANTAR")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lipyantar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.lipyantar")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# lipyantar configuration\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

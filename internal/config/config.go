package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Listen is the HTTP bind address, e.g. ":8000".
	Listen string `yaml:"listen"`

	// Dataset optionally overrides the embedded calendar table with an
	// external JSON (.json) or sqlite (.db/.sqlite) dataset file.
	Dataset string `yaml:"dataset"`

	// AuthFile points at a "user:argon2id-hash" credentials file. When set
	// and present, all API routes except /api/health require basic auth.
	AuthFile string `yaml:"auth_file"`

	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if err := NormalizeAndValidate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = ":8000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// NormalizeAndValidate applies defaults and checks invariants.
func NormalizeAndValidate(cfg *Config) error {
	applyDefaults(cfg)
	if !strings.Contains(cfg.Listen, ":") {
		return fmt.Errorf("listen must be a host:port address, got %q", cfg.Listen)
	}
	if cfg.Dataset != "" {
		switch {
		case strings.HasSuffix(cfg.Dataset, ".json"),
			strings.HasSuffix(cfg.Dataset, ".db"),
			strings.HasSuffix(cfg.Dataset, ".sqlite"):
		default:
			return fmt.Errorf("dataset must end in .json, .db or .sqlite, got %q", cfg.Dataset)
		}
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug/info/warn/error, got %q", cfg.Log.Level)
	}
	return nil
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DataFile  string `env:"STAFFDIR_DATA_FILE" envDefault:"employees.txt"` // Path to the roster file (created on first run)
	Env       string `env:"ENV" envDefault:"dev"`                          // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`                   // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`                  // Log format (text, json)
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

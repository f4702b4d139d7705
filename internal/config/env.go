package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServeEnv holds SSH server settings that can come from the environment.
// Command-line flags take precedence over these values.
type ServeEnv struct {
	Address     string        `env:"TRAPSWEEP_SSH_ADDR" envDefault:":23234"`
	HostKeyPath string        `env:"TRAPSWEEP_HOST_KEY"`
	DBPath      string        `env:"TRAPSWEEP_DB" envDefault:"~/.arcade/scores.db"`
	IdleTimeout time.Duration `env:"TRAPSWEEP_IDLE_TIMEOUT" envDefault:"30m"`
	MaxSessions int           `env:"TRAPSWEEP_MAX_SESSIONS" envDefault:"64"`
	LogLevel    string        `env:"TRAPSWEEP_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServeEnv reads ServeEnv from the environment.
func LoadServeEnv() (ServeEnv, error) {
	var cfg ServeEnv
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

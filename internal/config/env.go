package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServeEnv holds SSH server settings read from the environment.
// Command-line flags override these when set explicitly.
type ServeEnv struct {
	Address     string        `env:"ARCADE_SSH_ADDR" envDefault:":23234"`
	HostKeyPath string        `env:"ARCADE_HOST_KEY"`
	IdleTimeout time.Duration `env:"ARCADE_IDLE_TIMEOUT" envDefault:"30m"`
	MaxSessions int           `env:"ARCADE_MAX_SESSIONS" envDefault:"32"`
	LogLevel    string        `env:"ARCADE_LOG_LEVEL" envDefault:"info"`
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// LoadServeEnv reads .env (if present) and then the process environment.
func LoadServeEnv() (ServeEnv, error) {
	var cfg ServeEnv
	if err := LoadDotEnv(); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Package config loads crmsession settings from the environment.
//
// An optional .env file in the working directory is applied first; values
// already present in the environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const Prefix = "CRMSESSION_"

// Config represents session client configuration
type Config struct {
	APIURL          string        `env:"API_URL" envDefault:"http://localhost:8000/api"`
	StorageURL      string        `env:"STORAGE_URL"`
	APITimeout      time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
	OAuth2ConfigURL string        `env:"OAUTH2_CONFIG_URL"`
}

// Init sets defaults that depend on the runtime environment
func (c *Config) Init() {
	if c.StorageURL == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.StorageURL = filepath.Join(home, ".crmsession")
		} else {
			c.StorageURL = filepath.Join(os.TempDir(), "crmsession")
		}
	}
}

// Validate checks config
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api URL was empty")
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("invalid api timeout: %v", c.APITimeout)
	}
	return nil
}

// Load loads config from .env files and environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %v: %w", file, err)
		}
	}
	ret := &Config{}
	if err := env.ParseWithOptions(ret, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	ret.Init()
	return ret, ret.Validate()
}

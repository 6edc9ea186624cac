// Package storage holds server-side configuration persisted next to the
// collection store.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// ServerConfig is the server configuration loaded from config.yaml in the
// store directory. A file with defaults is written on first run.
type ServerConfig struct {
	// AdminPasswordHash is a bcrypt hash. When set (together with
	// JWTSecret), mutating endpoints require a bearer token from
	// /api/auth/token.
	AdminPasswordHash string `yaml:"admin_password_hash"`
	JWTSecret         string `yaml:"jwt_secret"`

	VAPID struct {
		PublicKey  string `yaml:"public_key"`
		PrivateKey string `yaml:"private_key"`
		Subscriber string `yaml:"subscriber"`
	} `yaml:"vapid"`

	RateLimit struct {
		// Requests per window allowed per client IP on mutating routes.
		Requests int `yaml:"requests"`
		WindowS  int `yaml:"window_s"`
		Burst    int `yaml:"burst"`
	} `yaml:"rate_limit"`

	Git struct {
		Enabled     bool   `yaml:"enabled"`
		AuthorName  string `yaml:"author_name"`
		AuthorEmail string `yaml:"author_email"`
	} `yaml:"git"`
}

// Defaults returns a config with sane defaults.
func Defaults() *ServerConfig {
	c := &ServerConfig{}
	c.RateLimit.Requests = 60
	c.RateLimit.WindowS = 60
	c.RateLimit.Burst = 20
	c.Git.AuthorName = "vibebase"
	c.Git.AuthorEmail = "vibebase@localhost"
	return c
}

// LoadServerConfig reads config.yaml from dir, writing defaults first when
// the file does not exist.
func LoadServerConfig(dir string) (*ServerConfig, error) {
	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Defaults()
		if err := cfg.Save(dir); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to config.yaml in dir.
func (c *ServerConfig) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

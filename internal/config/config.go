package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the connection settings for the hosted alpha table.
type Config struct {
	EndpointURL string
	AccessKey   string
}

const (
	defaultConfigPath = "~/.config/platewatch/config.toml"

	// Environment overrides, checked after the config file.
	envEndpoint = "PLATEWATCH_URL"
	envKey      = "PLATEWATCH_KEY"
)

// Load locates and parses the platewatch config. The endpoint URL and
// access key are required; a missing value is a fatal construction-time
// error, not something to retry.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, readErr := io.ReadAll(file)
		if readErr != nil {
			return Config{}, fmt.Errorf("read config: %w", readErr)
		}
		var raw struct {
			EndpointURL string `toml:"endpoint_url"`
			AccessKey   string `toml:"access_key"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.EndpointURL = strings.TrimSpace(raw.EndpointURL)
		cfg.AccessKey = strings.TrimSpace(raw.AccessKey)
	case errors.Is(err, os.ErrNotExist):
		// Environment variables may still supply everything.
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if v := strings.TrimSpace(os.Getenv(envEndpoint)); v != "" {
		cfg.EndpointURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		cfg.AccessKey = v
	}

	if err := cfg.validate(resolved); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate(path string) error {
	if c.EndpointURL == "" {
		return fmt.Errorf("endpoint URL missing: set endpoint_url in %s or %s in the environment", path, envEndpoint)
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key missing: set access_key in %s or %s in the environment", path, envKey)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

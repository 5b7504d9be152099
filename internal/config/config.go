// Package config handles loading Marquee's configuration.
//
// Resolution order for the API base URL: explicit override (CLI flag),
// MARQUEE_API_BASE_URL environment variable (a .env file is honored when
// present), the TOML config file, then the built-in default. Missing config
// files are not an error; Marquee works out of the box against a local
// backend.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Marquee needs.
type Config struct {
	APIBaseURL string
}

const (
	defaultConfigPath = "~/.config/marquee/config.toml"
	defaultAPIBaseURL = "http://127.0.0.1:8080"

	envAPIBaseURL = "MARQUEE_API_BASE_URL"
)

// Load locates and parses the config, folding in environment overrides.
func Load(path string) (Config, error) {
	// A .env in the working directory feeds the environment; absence is
	// the normal case.
	_ = godotenv.Load()

	cfg := Config{APIBaseURL: defaultAPIBaseURL}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL string `toml:"api_base_url"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if trimmed := strings.TrimSpace(raw.APIBaseURL); trimmed != "" {
		cfg.APIBaseURL = trimmed
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if value := strings.TrimSpace(os.Getenv(envAPIBaseURL)); value != "" {
		cfg.APIBaseURL = value
	}
	return cfg
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

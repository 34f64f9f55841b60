package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	LogLevel      string `json:"log_level"`
	Format        string `json:"format"`
	MaxConcurrent int    `json:"max_concurrent"`
	StaleGuard    bool   `json:"stale_guard"`
	Backend       struct {
		BaseURL        string `json:"base_url"`
		AuthToken      string `json:"auth_token"`
		TimeoutSeconds int    `json:"timeout_seconds"`
	} `json:"backend"`
	Stats struct {
		Model string `json:"model"`
	} `json:"stats"`
}

// Timeout returns the backend request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// Default returns the configuration written on first load.
func Default() *Config {
	cfg := &Config{
		LogLevel:      "info",
		Format:        "text",
		MaxConcurrent: 4,
		StaleGuard:    true,
	}
	cfg.Backend.BaseURL = "http://127.0.0.1:8000"
	cfg.Backend.TimeoutSeconds = 30
	cfg.Stats.Model = "gpt-4"
	return cfg
}

// Load reads the config file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	// Override from env (highest precedence)
	if baseURL := os.Getenv("ARCHIVEVIEW_BASE_URL"); baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}
	if token := os.Getenv("ARCHIVEVIEW_AUTH_TOKEN"); token != "" {
		cfg.Backend.AuthToken = token
	}
	if level := os.Getenv("ARCHIVEVIEW_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// LoadFile reads the config file at path without environment overrides.
// A missing file is created with defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	switch c.Format {
	case "text", "html", "markdown":
	default:
		return fmt.Errorf("invalid format %q: must be one of text, html, markdown", c.Format)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1")
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend.timeout_seconds must be non-negative")
	}
	return nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

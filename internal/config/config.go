// Package config provides layered configuration for ymjkit:
// built-in defaults, then ~/.config/ymjkit/config.yaml, then YMJKIT_*
// environment variables (highest priority).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the complete ymjkit configuration.
type Config struct {
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Search     SearchConfig     `yaml:"search"`
	Embed      EmbedConfig      `yaml:"embed"`
}

// EmbeddingsConfig configures the embedding provider.
type EmbeddingsConfig struct {
	// Provider selects the backend: "ollama" (default) or "static".
	Provider string `yaml:"provider"`

	// Model is the embedding model name (default: nomic-embed-text).
	Model string `yaml:"model"`

	// OllamaHost is the Ollama API endpoint (default: http://localhost:11434).
	OllamaHost string `yaml:"ollama_host"`
}

// SearchConfig configures corpus search.
type SearchConfig struct {
	// TopK is the default number of results (default: 10).
	TopK int `yaml:"top_k"`

	// Workers bounds concurrent file reads during search (default: NumCPU).
	Workers int `yaml:"workers"`
}

// EmbedConfig configures batch embedding.
type EmbedConfig struct {
	// Workers bounds concurrent file updates (default: 1; files are
	// independent, raise this when the backend can take parallel load).
	Workers int `yaml:"workers"`
}

// NewConfig returns a configuration with defaults applied.
func NewConfig() *Config {
	return &Config{
		Embeddings: EmbeddingsConfig{
			Provider:   "ollama",
			Model:      "",
			OllamaHost: "",
		},
		Search: SearchConfig{
			TopK:    10,
			Workers: runtime.NumCPU(),
		},
		Embed: EmbedConfig{
			Workers: 1,
		},
	}
}

// DefaultPath returns the user config file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ymjkit", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ymjkit", "config.yaml")
}

// Load builds the effective configuration: defaults, overlaid with the
// user config file when present, overlaid with environment variables.
// A missing config file is not an error.
func Load() (*Config, error) {
	cfg := NewConfig()

	path := DefaultPath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays YMJKIT_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("YMJKIT_PROVIDER"); v != "" {
		c.Embeddings.Provider = v
	}
	if v := os.Getenv("YMJKIT_MODEL"); v != "" {
		c.Embeddings.Model = v
	}
	if v := os.Getenv("YMJKIT_OLLAMA_HOST"); v != "" {
		c.Embeddings.OllamaHost = v
	}
	if v := os.Getenv("YMJKIT_SEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Search.Workers = n
		}
	}
	if v := os.Getenv("YMJKIT_EMBED_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Embed.Workers = n
		}
	}
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.Search.TopK <= 0 {
		return fmt.Errorf("search.top_k must be positive, got %d", c.Search.TopK)
	}
	if c.Search.Workers <= 0 {
		c.Search.Workers = runtime.NumCPU()
	}
	if c.Embed.Workers <= 0 {
		c.Embed.Workers = 1
	}
	return nil
}

package embed

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// ProviderType represents an embedding provider
type ProviderType string

const (
	// ProviderOllama uses the Ollama API for embeddings (default, real model)
	ProviderOllama ProviderType = "ollama"

	// ProviderStatic uses hash-based embeddings (offline, deterministic,
	// reduced semantic quality)
	ProviderStatic ProviderType = "static"
)

// ParseProvider converts a config string to a ProviderType.
// Unrecognized values fall back to Ollama.
func ParseProvider(s string) ProviderType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return ProviderStatic
	case "ollama", "":
		return ProviderOllama
	default:
		return ProviderOllama
	}
}

// Config selects and configures the embedder built by NewEmbedder.
type Config struct {
	Provider ProviderType
	Model    string
	Host     string
	Mode     Mode
}

// NewEmbedder creates an embedder for the given provider.
// The YMJKIT_EMBEDDER environment variable can override the provider:
//   - "ollama": use the Ollama HTTP backend (default)
//   - "static": use the hash-based embedder (no network, no model)
//
// The result is wrapped with an LRU cache unless YMJKIT_EMBED_CACHE is set
// to a false-ish value. Construct once per process invocation and reuse
// across all documents: model initialization dominates the cost.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	provider := cfg.Provider
	if env := os.Getenv("YMJKIT_EMBEDDER"); env != "" {
		provider = ParseProvider(env)
	}

	var embedder Embedder
	var err error

	switch provider {
	case ProviderStatic:
		embedder = NewStaticEmbedder()
	case ProviderOllama:
		ocfg := DefaultOllamaConfig()
		if cfg.Model != "" {
			ocfg.Model = cfg.Model
		}
		if cfg.Host != "" {
			ocfg.Host = cfg.Host
		}
		if cfg.Mode != "" {
			ocfg.Mode = cfg.Mode
		}
		embedder, err = NewOllamaEmbedder(ctx, ocfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	if !isCacheDisabled() {
		embedder = NewCachedEmbedder(embedder, DefaultEmbeddingCacheSize)
	}

	return embedder, nil
}

// isCacheDisabled checks if the embedding cache is disabled via environment.
func isCacheDisabled() bool {
	v := strings.ToLower(os.Getenv("YMJKIT_EMBED_CACHE"))
	return v == "false" || v == "0" || v == "off" || v == "disabled"
}

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
)

// OllamaEmbedder generates embeddings using Ollama's HTTP API.
//
// Empty or whitespace-only input is rejected with a provider error rather
// than embedded, so callers never persist a vector for vacuous text.
type OllamaEmbedder struct {
	client    *http.Client
	transport *http.Transport // Store for connection cleanup
	config    OllamaConfig
	modelName string
	dims      int

	mu     sync.RWMutex
	closed bool
}

// Verify interface implementation at compile time
var _ Embedder = (*OllamaEmbedder)(nil)

// NewOllamaEmbedder creates a new Ollama embedder.
// The health check discovers the model and embedding dimensions once;
// the embedder is then reused for every document in the run.
func NewOllamaEmbedder(ctx context.Context, cfg OllamaConfig) (*OllamaEmbedder, error) {
	// Apply defaults
	if cfg.Host == "" {
		cfg.Host = DefaultOllamaHost
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	if cfg.FallbackModels == nil {
		cfg.FallbackModels = FallbackOllamaModels
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeStandard
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	// Short idle timeout: CLI runs are short-lived, clean up connections
	// quickly after Ctrl+C.
	transport := &http.Transport{
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     10 * time.Second,
	}

	// No http.Client.Timeout: per-request context timeouts are used so a
	// cold model load does not poison every later request.
	e := &OllamaEmbedder{
		client:    &http.Client{Transport: transport},
		transport: transport,
		config:    cfg,
		modelName: cfg.Model,
		dims:      cfg.Dimensions,
	}

	if !cfg.SkipHealthCheck {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		modelName, err := e.findAvailableModel(checkCtx)
		if err != nil {
			transport.CloseIdleConnections()
			return nil, kiterrors.ProviderError(
				fmt.Sprintf("failed to connect to Ollama or find model: %v", err), err).
				WithSuggestion("start Ollama and pull an embedding model, e.g. 'ollama pull nomic-embed-text'")
		}
		e.modelName = modelName

		if e.dims == 0 {
			dims, err := e.detectDimensions(checkCtx)
			if err != nil {
				transport.CloseIdleConnections()
				return nil, kiterrors.ProviderError(
					fmt.Sprintf("failed to detect embedding dimensions: %v", err), err)
			}
			e.dims = dims
		}
	}

	if e.dims == 0 {
		e.dims = DefaultDimensions
	}

	slog.Debug("ollama_embedder_ready",
		slog.String("model", e.modelName),
		slog.Int("dimensions", e.dims),
		slog.String("mode", string(cfg.Mode)))

	return e, nil
}

// Embed generates the embedding for a single text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, kiterrors.New(kiterrors.ErrCodeProviderUnavailable, "embedder is closed", nil)
	}
	e.mu.RUnlock()

	if strings.TrimSpace(text) == "" {
		return nil, kiterrors.New(kiterrors.ErrCodeEmptyInput,
			"cannot embed empty text", nil)
	}

	var vec []float32
	err := WithRetry(ctx, RetryConfig{
		MaxRetries:   e.config.MaxRetries,
		InitialDelay: time.Second,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
	}, func() error {
		var embedErr error
		vec, embedErr = e.doEmbed(ctx, text)
		return embedErr
	})
	if err != nil {
		return nil, err
	}

	if len(vec) != e.dims {
		return nil, kiterrors.Newf(kiterrors.ErrCodeEmbeddingFailed,
			"unexpected embedding dimension: got %d, want %d", len(vec), e.dims)
	}

	return vec, nil
}

// doEmbed performs one /api/embed request.
func (e *OllamaEmbedder) doEmbed(ctx context.Context, text string) ([]float32, error) {
	reqCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	reqBody := ollamaEmbedRequest{
		Model: e.modelName,
		Input: text,
	}
	// Standard mode pins inference to the CPU so results do not depend on
	// local GPU availability. GPU mode leaves layer placement to Ollama.
	if !e.config.Mode.Accelerated() {
		reqBody.Options = map[string]any{"num_gpu": 0}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeInternal, err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, e.config.Host+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, kiterrors.New(kiterrors.ErrCodeProviderTimeout,
				fmt.Sprintf("embedding request timed out after %s", e.config.Timeout), err)
		}
		return nil, kiterrors.ProviderError(fmt.Sprintf("failed to reach Ollama: %v", err), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, kiterrors.Newf(kiterrors.ErrCodeEmbeddingFailed,
			"embedding failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, kiterrors.Wrap(kiterrors.ErrCodeEmbeddingFailed, err)
	}
	if len(result.Embeddings) == 0 {
		return nil, kiterrors.New(kiterrors.ErrCodeEmbeddingFailed,
			"Ollama returned no embeddings", nil)
	}

	return result.Embeddings[0], nil
}

// listModels gets available models from Ollama.
func (e *OllamaEmbedder) listModels(ctx context.Context) ([]ollamaModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.config.Host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ollama: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result ollamaModelListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Models, nil
}

// findAvailableModel finds a suitable embedding model.
func (e *OllamaEmbedder) findAvailableModel(ctx context.Context) (string, error) {
	models, err := e.listModels(ctx)
	if err != nil {
		return "", err
	}

	// Build set of available model names (normalized, with and without tag)
	available := make(map[string]string) // normalized -> actual
	for _, m := range models {
		name := strings.ToLower(m.Name)
		available[name] = m.Name
		base := strings.Split(name, ":")[0]
		if _, exists := available[base]; !exists {
			available[base] = m.Name
		}
	}

	candidates := append([]string{e.config.Model}, e.config.FallbackModels...)
	for _, candidate := range candidates {
		name := strings.ToLower(candidate)
		if actual, ok := available[name]; ok {
			return actual, nil
		}
		base := strings.Split(name, ":")[0]
		if actual, ok := available[base]; ok {
			return actual, nil
		}
	}

	return "", fmt.Errorf("no embedding model available (tried %s and %v)",
		e.config.Model, e.config.FallbackModels)
}

// detectDimensions auto-detects embedding dimensions from a test embedding.
func (e *OllamaEmbedder) detectDimensions(ctx context.Context) (int, error) {
	vec, err := e.doEmbed(ctx, "dimension detection")
	if err != nil {
		return 0, err
	}
	return len(vec), nil
}

// Dimensions returns the embedding dimension.
func (e *OllamaEmbedder) Dimensions() int {
	return e.dims
}

// ModelName returns the model identifier.
func (e *OllamaEmbedder) ModelName() string {
	return e.modelName
}

// Available checks whether the Ollama API is reachable.
func (e *OllamaEmbedder) Available(ctx context.Context) bool {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return false
	}
	e.mu.RUnlock()

	checkCtx, cancel := context.WithTimeout(ctx, e.config.ConnectTimeout)
	defer cancel()

	_, err := e.listModels(checkCtx)
	return err == nil
}

// Close releases HTTP resources.
func (e *OllamaEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.transport.CloseIdleConnections()
	return nil
}

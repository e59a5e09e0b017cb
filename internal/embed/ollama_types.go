package embed

import "time"

// Ollama API constants
const (
	// DefaultOllamaHost is the default Ollama API endpoint
	DefaultOllamaHost = "http://localhost:11434"

	// DefaultOllamaModel is the default embedding model. nomic-embed-text
	// is a general-purpose text model well suited to narrative documents.
	DefaultOllamaModel = "nomic-embed-text"
)

// FallbackOllamaModels are tried in order if the primary model is not
// pulled. All are general text embedding models.
var FallbackOllamaModels = []string{
	"mxbai-embed-large",
	"all-minilm",
}

// OllamaConfig configures the Ollama embedder
type OllamaConfig struct {
	// Host is the Ollama API endpoint (default: http://localhost:11434)
	Host string

	// Model is the embedding model to use (default: nomic-embed-text)
	Model string

	// FallbackModels are tried in order if primary model unavailable
	FallbackModels []string

	// Mode selects CPU-only or accelerated inference.
	Mode Mode

	// Dimensions can be set to override auto-detection (0 = auto-detect)
	Dimensions int

	// Timeout for embedding requests (default: 120s)
	Timeout time.Duration

	// ConnectTimeout for the initial health check (default: 5s)
	ConnectTimeout time.Duration

	// MaxRetries for transient failures (default: 3)
	MaxRetries int

	// SkipHealthCheck skips the initial Ollama availability check (for testing)
	SkipHealthCheck bool
}

// ollamaEmbedRequest is the Ollama /api/embed request
type ollamaEmbedRequest struct {
	Model   string         `json:"model"`
	Input   string         `json:"input"`
	Options map[string]any `json:"options,omitempty"`
}

// ollamaEmbedResponse is the Ollama /api/embed response
type ollamaEmbedResponse struct {
	Model      string      `json:"model"`
	Embeddings [][]float32 `json:"embeddings"`
}

// ollamaModelInfo describes one entry of the /api/tags response
type ollamaModelInfo struct {
	Name string `json:"name"`
}

// ollamaModelListResponse is the Ollama /api/tags response
type ollamaModelListResponse struct {
	Models []ollamaModelInfo `json:"models"`
}

// DefaultOllamaConfig returns sensible defaults.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Host:           DefaultOllamaHost,
		Model:          DefaultOllamaModel,
		FallbackModels: FallbackOllamaModels,
		Mode:           ModeStandard,
		Timeout:        DefaultTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		MaxRetries:     DefaultMaxRetries,
	}
}

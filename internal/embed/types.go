package embed

import (
	"context"
	"math"
	"time"
)

// Common embedding constants
const (
	// DefaultDimensions is the embedding dimension for nomic-embed-text,
	// used when dimension auto-detection is skipped.
	DefaultDimensions = 768

	// StaticDimensions is the embedding dimension for the static embedder.
	StaticDimensions = 256

	// DefaultTimeout is the default timeout for a single embedding request.
	// Cold model loads can take tens of seconds, so this is generous.
	DefaultTimeout = 120 * time.Second

	// DefaultConnectTimeout is the timeout for the initial health check.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for
	// transient backend failures.
	DefaultMaxRetries = 3
)

// Mode selects the execution strategy for embedding and scoring.
// It must not affect returned vector values beyond floating-point
// nondeterminism: cosine rankings are stable across modes, bit-exact
// reproducibility is not guaranteed.
type Mode string

const (
	// ModeStandard forces CPU execution.
	ModeStandard Mode = "standard"

	// ModeGPU lets the backend use hardware acceleration.
	ModeGPU Mode = "gpu"
)

// Accelerated reports whether the mode requests hardware acceleration.
func (m Mode) Accelerated() bool {
	return m == ModeGPU
}

// Embedder generates vector embeddings for text.
//
// Implementations are deterministic for a fixed (text, model, mode) triple
// and safe for concurrent use. Construct one embedder per process and reuse
// it across files: model initialization is the expensive part.
//
// Empty-input policy is backend-specific and documented on each
// implementation: the Ollama backend rejects empty or whitespace-only text,
// the static backend embeds it as a zero vector.
type Embedder interface {
	// Embed generates the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimension.
	Dimensions() int

	// ModelName returns the model identifier.
	ModelName() string

	// Available checks if the embedder is ready.
	Available(ctx context.Context) bool

	// Close releases resources.
	Close() error
}

// normalizeVector normalizes a vector to unit length.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return v // Return as-is if zero vector
	}

	normalized := make([]float32, len(v))
	for i, val := range v {
		normalized[i] = float32(float64(val) / magnitude)
	}
	return normalized
}

package corpus

import (
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/Aman-CERP/ymjkit/internal/embed"
)

// Kernel computes cosine similarity between two vectors. The boolean is
// false when the similarity is undefined: mismatched dimensions or a
// zero-magnitude operand. Undefined similarity excludes a document from
// ranking rather than scoring it.
type Kernel func(a, b []float32) (float64, bool)

// KernelFor selects the scoring kernel for an execution mode. The two
// kernels agree to within floating-point tolerance; rankings are stable
// across modes.
func KernelFor(mode embed.Mode) Kernel {
	if mode.Accelerated() {
		return cosineSIMD
	}
	return cosineGo
}

// cosineGo is the portable scalar kernel.
func cosineGo(a, b []float32) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

// cosineSIMD uses vek's vectorized kernels (AVX2 on amd64, NEON via the
// portable path elsewhere).
func cosineSIMD(a, b []float32) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	normA := vek32.Norm(a)
	normB := vek32.Norm(b)
	if normA == 0 || normB == 0 {
		return 0, false
	}

	return float64(vek32.Dot(a, b) / (normA * normB)), true
}

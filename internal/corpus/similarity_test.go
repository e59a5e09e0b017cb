package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/ymjkit/internal/embed"
)

func TestCosine_SelfSimilarityIsOne(t *testing.T) {
	v := []float32{0.3, 0.4, 0.5}

	score, ok := cosineGo(v, v)

	require.True(t, ok)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosine_OrthogonalVectorsScoreZero(t *testing.T) {
	score, ok := cosineGo([]float32{1, 0}, []float32{0, 1})

	require.True(t, ok)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestCosine_OppositeVectorsScoreMinusOne(t *testing.T) {
	score, ok := cosineGo([]float32{1, 0}, []float32{-1, 0})

	require.True(t, ok)
	assert.InDelta(t, -1.0, score, 1e-9)
}

func TestCosine_UndefinedCases(t *testing.T) {
	// Dimension mismatch
	_, ok := cosineGo([]float32{1, 0}, []float32{1, 0, 0})
	assert.False(t, ok)

	// Empty operands
	_, ok = cosineGo(nil, nil)
	assert.False(t, ok)

	// Zero magnitude
	_, ok = cosineGo([]float32{0, 0}, []float32{1, 0})
	assert.False(t, ok)
}

func TestCosine_ScaleInvariant(t *testing.T) {
	a := []float32{0.2, 0.7, 0.1}
	b := []float32{0.5, 0.1, 0.9}
	scaled := []float32{5, 1, 9}

	s1, ok1 := cosineGo(a, b)
	s2, ok2 := cosineGo(a, scaled)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.InDelta(t, s1, s2, 1e-6)
}

func TestKernelFor_ModesAgree(t *testing.T) {
	// The scalar and accelerated kernels must produce the same rankings,
	// so their scores have to agree within floating-point tolerance.
	scalar := KernelFor(embed.ModeStandard)
	simd := KernelFor(embed.ModeGPU)

	a := []float32{0.11, 0.42, 0.87, 0.05, 0.33, 0.61, 0.29, 0.74}
	b := []float32{0.92, 0.18, 0.44, 0.67, 0.21, 0.09, 0.83, 0.36}

	s1, ok1 := scalar(a, b)
	s2, ok2 := simd(a, b)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.InDelta(t, s1, s2, 1e-4)
}

func TestKernelFor_UndefinedCasesAgree(t *testing.T) {
	for _, kernel := range []Kernel{KernelFor(embed.ModeStandard), KernelFor(embed.ModeGPU)} {
		_, ok := kernel([]float32{1}, []float32{1, 2})
		assert.False(t, ok)
		_, ok = kernel([]float32{0, 0}, []float32{0, 0})
		assert.False(t, ok)
	}
}

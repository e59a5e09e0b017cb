package updater

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

// stubEmbedder returns a fixed vector and counts calls.
type stubEmbedder struct {
	calls  atomic.Int64
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

func (s *stubEmbedder) Dimensions() int                { return len(s.vector) }
func (s *stubEmbedder) ModelName() string              { return "stub" }
func (s *stubEmbedder) Available(context.Context) bool { return true }
func (s *stubEmbedder) Close() error                   { return nil }

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const plainDoc = `---
doc_type: note
title: Migration plan
tags:
  - storage
---

Move the metadata store first, then backfill.
`

// ============================================================================
// Single-file updates
// ============================================================================

func TestUpdate_WritesFooterWithEmbedding(t *testing.T) {
	// Given: a document without a footer
	path := writeDoc(t, t.TempDir(), "plan.ymj", plainDoc)
	emb := &stubEmbedder{vector: []float32{0.5, 0.5}}
	u := New(emb)

	// When: I update it
	res, err := u.Update(context.Background(), path, false)

	// Then: the rewritten file carries a complete footer
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := ymj.Parse(data)
	require.NoError(t, err)

	require.NotNil(t, doc.Footer)
	assert.Equal(t, ymj.SchemaVersion, *doc.Footer.Schema)
	assert.Equal(t, "Migration plan", doc.Footer.Index.Title)
	assert.Equal(t, []string{"storage"}, doc.Footer.Index.Tags)
	assert.Equal(t, []float32{0.5, 0.5}, doc.Footer.Index.Embedding)

	// Header and content survive the rewrite
	assert.Equal(t, "note", doc.Header["doc_type"])
	assert.Contains(t, doc.Content, "Move the metadata store first")
}

func TestUpdate_SecondRunSkipsWithoutProviderCall(t *testing.T) {
	// Given: a document embedded once
	path := writeDoc(t, t.TempDir(), "plan.ymj", plainDoc)
	emb := &stubEmbedder{vector: []float32{1, 0}}
	u := New(emb)

	_, err := u.Update(context.Background(), path, false)
	require.NoError(t, err)
	after, err := os.ReadFile(path)
	require.NoError(t, err)

	// When: I update it again without force
	res, err := u.Update(context.Background(), path, false)

	// Then: skipped, one total provider call, file byte-identical
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, res)
	assert.Equal(t, int64(1), emb.calls.Load())

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, after, again)
}

func TestUpdate_ForceReembeds(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "plan.ymj", plainDoc)
	emb := &stubEmbedder{vector: []float32{1, 0}}
	u := New(emb)

	_, err := u.Update(context.Background(), path, false)
	require.NoError(t, err)

	res, err := u.Update(context.Background(), path, true)

	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res)
	assert.Equal(t, int64(2), emb.calls.Load())
}

func TestUpdate_ProviderErrorLeavesFileUntouched(t *testing.T) {
	// Given: an embedder that always fails
	path := writeDoc(t, t.TempDir(), "plan.ymj", plainDoc)
	emb := &stubEmbedder{err: kiterrors.New(kiterrors.ErrCodeProviderUnavailable, "backend down", nil)}
	u := New(emb)

	// When: the update fails at the provider
	_, err := u.Update(context.Background(), path, false)

	// Then: the error propagates and the file is unchanged
	require.Error(t, err)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, plainDoc, string(data))
}

func TestUpdate_ParseErrorPropagates(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "bad.ymj", "no header here\n")
	u := New(&stubEmbedder{vector: []float32{1}})

	_, err := u.Update(context.Background(), path, false)

	require.Error(t, err)
	assert.True(t, kiterrors.IsFormat(err))
}

func TestUpdate_MissingFile(t *testing.T) {
	u := New(&stubEmbedder{vector: []float32{1}})

	_, err := u.Update(context.Background(), filepath.Join(t.TempDir(), "gone.ymj"), false)

	require.Error(t, err)
	assert.Equal(t, kiterrors.ErrCodeFileNotFound, kiterrors.GetCode(err))
}

func TestUpdate_TitleFallsBackToStem(t *testing.T) {
	// Given: a header without a title
	doc := "---\ndoc_type: note\n---\n\nsome body\n"
	path := writeDoc(t, t.TempDir(), "standup-notes.ymj", doc)
	u := New(&stubEmbedder{vector: []float32{1}})

	_, err := u.Update(context.Background(), path, false)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := ymj.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "standup-notes", parsed.Footer.Index.Title)
}

func TestUpdate_BrokenFooterIsReplaced(t *testing.T) {
	// Given: a document whose footer block is not valid JSON
	doc := plainDoc + "\n```json\n{broken\n```\n"
	path := writeDoc(t, t.TempDir(), "plan.ymj", doc)
	u := New(&stubEmbedder{vector: []float32{0.3}})

	res, err := u.Update(context.Background(), path, false)

	// Then: the broken block counts as no footer and gets rebuilt
	require.NoError(t, err)
	assert.Equal(t, ResultUpdated, res)

	data, _ := os.ReadFile(path)
	parsed, err := ymj.Parse(data)
	require.NoError(t, err)
	assert.NoError(t, parsed.FooterErr)
	assert.True(t, parsed.HasEmbedding())
}

// ============================================================================
// Guard and text canonicalization
// ============================================================================

func TestNeedsEmbedding(t *testing.T) {
	embedded, err := ymj.Parse([]byte(plainDoc))
	require.NoError(t, err)
	embedded.Footer = ymj.NewFooter("t", nil, []float32{1})

	bare, err := ymj.Parse([]byte(plainDoc))
	require.NoError(t, err)

	assert.False(t, NeedsEmbedding(embedded, false))
	assert.True(t, NeedsEmbedding(embedded, true))
	assert.True(t, NeedsEmbedding(bare, false))
}

func TestEmbedText_HeaderBeforeContent(t *testing.T) {
	doc, err := ymj.Parse([]byte(plainDoc))
	require.NoError(t, err)

	text, err := EmbedText(doc)
	require.NoError(t, err)

	headerIdx := strings.Index(text, "doc_type: note")
	contentIdx := strings.Index(text, "Move the metadata store first")
	require.GreaterOrEqual(t, headerIdx, 0)
	require.GreaterOrEqual(t, contentIdx, 0)
	assert.Less(t, headerIdx, contentIdx)
}

func TestEmbedText_IsDeterministic(t *testing.T) {
	doc, err := ymj.Parse([]byte(plainDoc))
	require.NoError(t, err)

	t1, err1 := EmbedText(doc)
	t2, err2 := EmbedText(doc)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, t1, t2)
}

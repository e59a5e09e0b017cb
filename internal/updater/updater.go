// Package updater computes and persists embedding footers for YMJ files.
//
// An update is a full-file rewrite: the document is parsed, the footer is
// rebuilt wholesale from the current header and content, and the file is
// replaced atomically. The header and content are written back unchanged.
package updater

import (
	"context"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/ymjkit/internal/embed"
	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

// Result describes the outcome of an Update call.
type Result int

const (
	// ResultSkipped means the document already had an embedding and force
	// was not set. No provider call, no write.
	ResultSkipped Result = iota

	// ResultUpdated means a fresh footer was computed and persisted.
	ResultUpdated
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case ResultUpdated:
		return "updated"
	default:
		return "skipped"
	}
}

// NeedsEmbedding reports whether a document requires an embed pass.
//
// The guard is structural: an existing index.embedding blocks recomputation
// unless force is set. Header or content edits do NOT invalidate an existing
// embedding; re-run with force after editing. (A content-hash check would
// close that gap; the structural rule matches the established file format.)
func NeedsEmbedding(doc *ymj.Document, force bool) bool {
	if force {
		return true
	}
	return !doc.HasEmbedding()
}

// EmbedText builds the canonical text to embed: the YAML-serialized header
// followed by the narrative content. Header first, so metadata edits change
// the embedding even when the content is untouched.
func EmbedText(doc *ymj.Document) (string, error) {
	headerYAML, err := yaml.Marshal(doc.Header)
	if err != nil {
		return "", kiterrors.Wrap(kiterrors.ErrCodeInternal, err)
	}
	return string(headerYAML) + "\n" + doc.Content, nil
}

// Updater embeds documents and rewrites them in place.
type Updater struct {
	embedder embed.Embedder
}

// New creates an Updater around an embedder. The embedder is shared across
// all files in a run; construct it once per process.
func New(embedder embed.Embedder) *Updater {
	return &Updater{embedder: embedder}
}

// Update embeds a single file.
//
// Parse failures propagate and nothing is written. A document that already
// has an embedding returns ResultSkipped without touching the provider or
// the file, unless force is set. On success exactly one write occurs, via
// temp file and atomic rename, so an interrupted run never leaves a
// partially-written document.
func (u *Updater) Update(ctx context.Context, path string, force bool) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ResultSkipped, kiterrors.Wrap(kiterrors.ErrCodeFileNotFound, err)
		}
		return ResultSkipped, kiterrors.Wrap(kiterrors.ErrCodeFileRead, err)
	}

	doc, err := ymj.Parse(data)
	if err != nil {
		return ResultSkipped, err
	}

	if !NeedsEmbedding(doc, force) {
		slog.Debug("embed_skipped", slog.String("path", path))
		return ResultSkipped, nil
	}

	text, err := EmbedText(doc)
	if err != nil {
		return ResultSkipped, err
	}

	vector, err := u.embedder.Embed(ctx, text)
	if err != nil {
		return ResultSkipped, err
	}

	title, ok := doc.Title()
	if !ok {
		title = ymj.Stem(path)
	}
	doc.Footer = ymj.NewFooter(title, doc.Tags(), vector)
	doc.FooterErr = nil

	out, err := ymj.Serialize(doc)
	if err != nil {
		return ResultSkipped, err
	}

	if err := writeAtomic(path, out); err != nil {
		return ResultSkipped, err
	}

	slog.Debug("embed_updated",
		slog.String("path", path),
		slog.Int("dimensions", len(vector)),
		slog.String("model", u.embedder.ModelName()))

	return ResultUpdated, nil
}

package corpus

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/ymjkit/internal/embed"
	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

// DefaultTopK is the number of results returned when none is requested.
const DefaultTopK = 10

// Result is one ranked search hit.
type Result struct {
	Path  string
	Score float64
}

// Options configures a search.
type Options struct {
	// TopK caps the number of results. Zero means DefaultTopK; negative
	// values are rejected.
	TopK int

	// Workers bounds concurrent file reads. Zero means NumCPU.
	Workers int
}

// Engine ranks a corpus of YMJ documents against a query.
type Engine struct {
	embedder embed.Embedder
	kernel   Kernel
}

// NewEngine creates a search engine. The embedder is used only for the
// query; document vectors come from their stored footers. The mode selects
// the scoring kernel and must match the mode used when embedding documents
// only insofar as rankings are mode-stable.
func NewEngine(embedder embed.Embedder, mode embed.Mode) *Engine {
	return &Engine{
		embedder: embedder,
		kernel:   KernelFor(mode),
	}
}

// Search embeds the query once, scores every embedded document under root
// by cosine similarity, and returns the top results ordered by score
// descending with lexicographic path order breaking ties.
//
// Documents that fail to parse or carry no usable embedding (absent footer,
// missing vector, dimension mismatch, zero magnitude) are silently
// excluded: an unembedded document is an expected state, not a fault.
func (e *Engine) Search(ctx context.Context, query, root string, opts Options) ([]Result, error) {
	topK := opts.TopK
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < 0 {
		return nil, kiterrors.Newf(kiterrors.ErrCodeInvalidTopK,
			"top_k must be a positive integer, got %d", topK)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	queryVec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	paths, err := Walk(ctx, root)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var results []Result

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			score, ok := e.scoreFile(path, queryVec)
			if !ok {
				return nil
			}

			mu.Lock()
			results = append(results, Result{Path: path, Score: score})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic order: score descending, then path ascending.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})

	if len(results) > topK {
		results = results[:topK]
	}

	slog.Debug("search_complete",
		slog.String("root", root),
		slog.Int("candidates", len(paths)),
		slog.Int("results", len(results)))

	return results, nil
}

// scoreFile reads one document and scores its stored embedding against the
// query vector. Any per-file problem disqualifies the document.
func (e *Engine) scoreFile(path string, queryVec []float32) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("search_skip_unreadable", slog.String("path", path))
		return 0, false
	}

	doc, err := ymj.Parse(data)
	if err != nil {
		slog.Debug("search_skip_unparseable", slog.String("path", path))
		return 0, false
	}

	vec := doc.Embedding()
	if vec == nil {
		return 0, false
	}

	return e.kernel(queryVec, vec)
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ymjkit/internal/corpus"
	"github.com/Aman-CERP/ymjkit/internal/embed"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	top     int
	gpu     bool
	backend string
	model   string
	host    string
	workers int
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query> <directory>",
		Short: "Search YMJ files semantically",
		Long: `Rank every embedded YMJ file under a directory by cosine similarity
to the query. Documents without a stored embedding are skipped; run
'ymjkit embed' first to make them searchable.

Results go to stdout as "[score] path" lines, one per hit, best first.

Examples:
  ymjkit search "retry backoff strategy" notes/
  ymjkit search "api design" docs/ --top 5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, args[0], args[1], opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&opts.top, "top", 0, "Number of results (default 10)")
	cmd.Flags().BoolVar(&opts.gpu, "gpu", false, "Use GPU acceleration")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Embedding backend: ollama, static")
	cmd.Flags().StringVar(&opts.model, "model", "", "Embedding model name")
	cmd.Flags().StringVar(&opts.host, "host", "", "Ollama API endpoint")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent file reads (default from config)")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query, directory string, opts searchOptions) error {
	cfg := loadConfig()

	// Progress goes to stderr so stdout stays pipeable.
	fmt.Fprintf(cmd.ErrOrStderr(), "Searching: %s\n\n", query)

	ecfg := embedderConfig(cfg, opts.backend, opts.model, opts.host, opts.gpu)
	embedder, err := embed.NewEmbedder(ctx, ecfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	topK := opts.top
	if topK == 0 {
		topK = cfg.Search.TopK
	}
	workers := opts.workers
	if workers <= 0 {
		workers = cfg.Search.Workers
	}

	engine := corpus.NewEngine(embedder, ecfg.Mode)
	results, err := engine.Search(ctx, query, directory, corpus.Options{
		TopK:    topK,
		Workers: workers,
	})
	if err != nil {
		return err
	}

	slog.Info("search_complete",
		slog.String("query", query),
		slog.Int("results", len(results)))

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "[%.3f] %s\n", r.Score, r.Path)
	}
	return nil
}

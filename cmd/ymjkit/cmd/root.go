// Package cmd provides the CLI commands for ymjkit.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ymjkit/internal/config"
	"github.com/Aman-CERP/ymjkit/internal/embed"
	"github.com/Aman-CERP/ymjkit/internal/logging"
	"github.com/Aman-CERP/ymjkit/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the ymjkit CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ymjkit",
		Short: "Toolkit for YMJ documents (YAML + Markdown + JSON index)",
		Long: `ymjkit works with YMJ files: single documents combining a YAML
metadata header, markdown content, and a trailing JSON index block
carrying tags, title, and a semantic embedding.

  ymjkit embed notes/*.ymj        # compute and store embeddings
  ymjkit search "query" notes/    # rank documents by similarity
  ymjkit validate --strict *.ymj  # check structure`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetVersionTemplate("ymjkit version {{.Version}}\n")

	// Debug logging flag
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.ymjkit/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newEmbedCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

// stopLogging closes the log file if debug logging was enabled.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// embedderConfig merges config-file settings with command flags into an
// embedder configuration. Flags win over the config file.
func embedderConfig(cfg *config.Config, backend, model, host string, gpu bool) embed.Config {
	provider := cfg.Embeddings.Provider
	if backend != "" {
		provider = backend
	}
	if model == "" {
		model = cfg.Embeddings.Model
	}
	if host == "" {
		host = cfg.Embeddings.OllamaHost
	}

	mode := embed.ModeStandard
	if gpu {
		mode = embed.ModeGPU
	}

	return embed.Config{
		Provider: embed.ParseProvider(provider),
		Model:    model,
		Host:     host,
		Mode:     mode,
	}
}

// loadConfig loads the layered configuration, falling back to defaults when
// the config file is unreadable.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config_load_failed", slog.String("error", err.Error()))
		return config.NewConfig()
	}
	return cfg
}

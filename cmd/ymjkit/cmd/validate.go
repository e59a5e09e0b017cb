package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/ymjkit/internal/output"
	"github.com/Aman-CERP/ymjkit/internal/validate"
	"github.com/Aman-CERP/ymjkit/internal/ymj"
)

func newValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate YMJ file structure",
		Long: `Check YMJ files for structural problems: missing or unclosed YAML
fences, invalid YAML, missing required fields, and malformed JSON
footers. With --strict, a present and complete embedding is required.

Validation reads files only; it never modifies them.

Examples:
  ymjkit validate notes/*.ymj
  ymjkit validate --strict docs/spec.ymj`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, strict)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Require embedding to be present")

	return cmd
}

func runValidate(cmd *cobra.Command, files []string, strict bool) error {
	out := output.New(cmd.OutOrStdout())

	failed := 0
	for _, path := range files {
		if !ymj.IsYMJ(path) {
			out.Warningf("%s: Not a .ymj file, skipping", path)
			continue
		}

		report := validate.File(path, strict)
		if report.Valid() {
			out.Successf("%s: Valid", path)
			continue
		}

		failed++
		out.Failuref("%s:", path)
		for _, msg := range report.Errors {
			out.Detail(msg)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

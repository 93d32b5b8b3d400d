// Package main provides the CLI entry point for exaccum-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exaccum-go/pkg/exaccum"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
)

var (
	schemaPath string
	strict     bool
	jsonOut    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exaccum",
		Short: "Extract, accumulate and recompute fixed-layout Excel workbooks",
		Long: `exaccum-go reads fixed rows out of a source workbook into detail and
summary tables, and rewrites quantity-driven cells of the source in place.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "YAML layout file (default: built-in CON-A layout)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail on non-numeric factor cells instead of treating them as 0")

	rootCmd.AddCommand(newServeCmd(), newExtractCmd(), newPreviewCmd(), newRecomputeCmd())
	return rootCmd
}

// pipelineOptions builds pipeline options from the persistent flags.
func pipelineOptions() (exaccum.Options, error) {
	opts := exaccum.DefaultOptions()
	opts.Strict = strict
	if schemaPath != "" {
		sc, err := schema.Load(schemaPath)
		if err != nil {
			return opts, fmt.Errorf("load schema: %w", err)
		}
		opts.Schema = sc
	}
	return opts, nil
}

// requireFile checks that the input workbook exists.
func requireFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exaccum-go/pkg/exaccum"
)

var (
	editsPath  string
	resultPath string
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [input.xlsx] [key]",
		Short: "List the rows a key matches, with their edit keys and factors",
		Args:  cobra.ExactArgs(2),
		RunE:  runPreview,
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print rows as JSON")
	return cmd
}

func newRecomputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute [input.xlsx] [key]",
		Short: "Apply quantity edits to key-matched rows and write a recomputed copy",
		Long: `Recompute reads edits as a JSON object mapping "{sheet}_{index}" to a
quantity (index is the row's position among the key's matches in that sheet,
as shown by preview). The input file is never modified.`,
		Args: cobra.ExactArgs(2),
		RunE: runRecompute,
	}
	cmd.Flags().StringVar(&editsPath, "edits", "", "JSON file with edits (default: stdin)")
	cmd.Flags().StringVarP(&resultPath, "output", "o", "CON-A_result.xlsx", "Output file path")
	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	if err := requireFile(args[0]); err != nil {
		return err
	}
	opts, err := pipelineOptions()
	if err != nil {
		return err
	}

	rows, err := exaccum.Preview(args[0], args[1], opts)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	if jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderPreview(rows, opts.SchemaOrDefault().Recompute.Pairs))
	return nil
}

func runRecompute(cmd *cobra.Command, args []string) error {
	if err := requireFile(args[0]); err != nil {
		return err
	}
	opts, err := pipelineOptions()
	if err != nil {
		return err
	}

	var raw []byte
	if editsPath != "" {
		raw, err = os.ReadFile(editsPath)
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read edits: %w", err)
	}

	var values map[string]interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("parse edits: %w", err)
	}
	edits, err := exaccum.ParseEdits(values)
	if err != nil {
		return err
	}

	data, err := exaccum.Recompute(args[0], args[1], edits, opts)
	if err != nil {
		return fmt.Errorf("recompute failed: %w", err)
	}
	if err := os.WriteFile(resultPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d edits)\n", resultPath, len(edits))
	return nil
}

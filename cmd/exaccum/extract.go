package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exaccum-go/pkg/exaccum"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/export"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/table"
)

var (
	outputPath   string
	exportPrefix string
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [input.xlsx] [category...]",
		Short: "Extract categories and accumulate them into one workbook",
		Long: `Extract reads each category in order and appends its rows to the detail and
summary tables, the same way repeated submissions accumulate in a session.
With --output (or --output-dir) the accumulated workbook is written as xlsx.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runExtract,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the accumulated workbook to this file")
	cmd.Flags().StringVar(&exportPrefix, "prefix", "CON-A_결과", "File name prefix when --output is a directory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print extracted rows as JSON instead of tables")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if err := requireFile(inputPath); err != nil {
		return err
	}
	opts, err := pipelineOptions()
	if err != nil {
		return err
	}

	wb := table.NewWorkbook()
	defer wb.Close()

	var extractions []*models.Extraction
	for _, category := range args[1:] {
		ext, err := exaccum.Extract(inputPath, category, opts)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		if _, _, err := exaccum.Accumulate(wb, ext, opts); err != nil {
			return fmt.Errorf("accumulate failed: %w", err)
		}
		if ext.Total() == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "category %s: %v\n", category, exaccum.ErrDataNotFound)
		}
		extractions = append(extractions, ext)
	}

	if jsonOut {
		data, err := json.MarshalIndent(extractions, "", "  ")
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		views, err := table.Snapshot(wb)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSheets(views))
	}

	if outputPath == "" {
		return nil
	}
	data, err := export.Serialize(wb)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	target := outputPath
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		target = filepath.Join(outputPath, export.FileName(exportPrefix, time.Now()))
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", target)
	return nil
}

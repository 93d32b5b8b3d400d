package table

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
	"github.com/xuri/excelize/v2"
)

// Append writes rows into the sheet named by spec, creating the sheet and its
// header row on first use. Rows go below the last used row; existing cells
// are never overwritten. Blank values and dropped columns are skipped, so
// sparse rows stay sparse. A record with nothing left to write takes no row.
// It returns the number of rows appended.
func Append(w *Workbook, spec schema.TableSpec, rows []models.RowRecord) (int, error) {
	cols, err := parser.ColumnSpan(spec.Columns)
	if err != nil {
		return 0, fmt.Errorf("table %q: %w", spec.Sheet, err)
	}
	drop := make(map[string]bool, len(spec.Drop))
	for _, c := range spec.Drop {
		drop[strings.ToUpper(c)] = true
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	start, err := w.prepare(spec.Sheet, cols)
	if err != nil {
		return 0, fmt.Errorf("table %q: %w", spec.Sheet, err)
	}

	written := 0
	for _, rec := range rows {
		cells := writableCells(rec, cols, drop)
		if len(cells) == 0 {
			continue
		}
		rowNum := start + written
		for _, col := range cols {
			value, ok := cells[col]
			if !ok {
				continue
			}
			cell, err := excelize.JoinCellName(col, rowNum)
			if err != nil {
				return written, err
			}
			if err := w.file.SetCellValue(spec.Sheet, cell, value); err != nil {
				return written, fmt.Errorf("table %q: write %s: %w", spec.Sheet, cell, err)
			}
		}
		written++
	}
	return written, nil
}

// writableCells returns the non-blank values of rec that land in the table.
func writableCells(rec models.RowRecord, cols []string, drop map[string]bool) map[string]interface{} {
	cells := make(map[string]interface{}, len(cols))
	for _, col := range cols {
		if drop[col] {
			continue
		}
		if value, ok := rec.Value(col); ok && !parser.IsBlank(value) {
			cells[col] = value
		}
	}
	return cells
}

// AppendDetail appends line-item rows to the schema's detail table.
func AppendDetail(w *Workbook, s *schema.Schema, rows []models.RowRecord) (int, error) {
	return Append(w, s.DetailTable, rows)
}

// AppendSummary appends aggregate rows to the schema's summary table.
func AppendSummary(w *Workbook, s *schema.Schema, rows []models.RowRecord) (int, error) {
	return Append(w, s.SummaryTable, rows)
}

// prepare ensures the sheet exists with a header and returns the first free row.
// Callers hold w.mu.
func (w *Workbook) prepare(sheet string, cols []string) (int, error) {
	if !w.hasSheet(sheet) {
		if err := w.createSheet(sheet); err != nil {
			return 0, err
		}
		return 2, w.writeHeader(sheet, cols)
	}

	last, err := parser.LastUsedRow(w.file, sheet)
	if err != nil {
		return 0, err
	}
	if last == 0 {
		return 2, w.writeHeader(sheet, cols)
	}
	return last + 1, nil
}

func (w *Workbook) writeHeader(sheet string, cols []string) error {
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	cell, err := excelize.JoinCellName(cols[0], 1)
	if err != nil {
		return err
	}
	return w.file.SetSheetRow(sheet, cell, &header)
}

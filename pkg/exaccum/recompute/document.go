// Package recompute rewrites quantity-driven output cells of a source workbook in place.
package recompute

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
	"github.com/xuri/excelize/v2"
)

// Document is one parsed workbook seen through two projections: Values for
// last-evaluated results and Formulas for raw expressions and edits.
type Document struct {
	file *excelize.File
}

// Open parses the workbook at path.
func Open(path string) (*Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Document{file: f}, nil
}

// OpenReader parses a workbook from r.
func OpenReader(r io.Reader) (*Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{file: f}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// Sheets returns sheet names in workbook order.
func (d *Document) Sheets() []string {
	return d.file.GetSheetList()
}

// Values returns the last-evaluated value projection.
func (d *Document) Values() ValueView {
	return ValueView{f: d.file}
}

// Formulas returns the raw expression projection.
func (d *Document) Formulas() FormulaView {
	return FormulaView{f: d.file}
}

// WriteTo serializes the whole workbook, edits included.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.file.WriteTo(w)
}

// ValueView reads cells as their stored results; formula cells yield the
// value computed when the file was last saved, never the formula text.
type ValueView struct {
	f *excelize.File
}

// Cell returns the value of col/row.
func (v ValueView) Cell(sheet, col string, row int) (string, error) {
	return parser.CellValue(v.f, sheet, col, row)
}

// Rows returns the value grid of a sheet.
func (v ValueView) Rows(sheet string) ([][]string, error) {
	rows, _, err := parser.ReadGrid(v.f, sheet)
	return rows, err
}

// FormulaView reads raw cell expressions and overwrites cells.
type FormulaView struct {
	f *excelize.File
}

// Formula returns the expression of col/row, or "" for a literal cell.
func (v FormulaView) Formula(sheet, col string, row int) (string, error) {
	cell, err := excelize.JoinCellName(col, row)
	if err != nil {
		return "", err
	}
	return v.f.GetCellFormula(sheet, cell)
}

// SetNumber replaces col/row with a literal number. Any formula in the cell is
// discarded. When the cell anchors a shared formula, the rest of the group is
// kept as plain per-cell formulas.
func (v FormulaView) SetNumber(sheet, col string, row int, n float64) error {
	cell, err := excelize.JoinCellName(col, row)
	if err != nil {
		return err
	}
	formula, err := v.f.GetCellFormula(sheet, cell)
	if err != nil {
		return err
	}
	if formula == "" {
		return v.f.SetCellFloat(sheet, cell, n, -1, 64)
	}

	before, err := v.formulaCells(sheet, col, row)
	if err != nil {
		return err
	}
	if err := v.f.SetCellFloat(sheet, cell, n, -1, 64); err != nil {
		return err
	}
	for _, fc := range before {
		if fc.cell == cell {
			continue
		}
		got, err := v.f.GetCellFormula(sheet, fc.cell)
		if err != nil {
			return err
		}
		if got != "" {
			continue
		}
		if err := v.f.SetCellFormula(sheet, fc.cell, fc.formula); err != nil {
			return fmt.Errorf("restore formula %s!%s: %w", sheet, fc.cell, err)
		}
	}
	return nil
}

type formulaCell struct {
	cell    string
	formula string
}

// formulaCells lists every formula in the sheet with shared formulas
// expanded, in row-major order. The scanned area covers the value grid, the
// recorded sheet dimension and col/row.
func (v FormulaView) formulaCells(sheet, col string, row int) ([]formulaCell, error) {
	maxCol, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return nil, err
	}
	maxRow := row

	rows, err := v.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	maxRow = max(maxRow, len(rows))
	for _, r := range rows {
		maxCol = max(maxCol, len(r))
	}
	if dim, err := v.f.GetSheetDimension(sheet); err == nil && dim != "" {
		parts := strings.Split(dim, ":")
		if c, r, err := excelize.CellNameToCoordinates(parts[len(parts)-1]); err == nil {
			maxCol, maxRow = max(maxCol, c), max(maxRow, r)
		}
	}

	var out []formulaCell
	for r := 1; r <= maxRow; r++ {
		for c := 1; c <= maxCol; c++ {
			name, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			formula, err := v.f.GetCellFormula(sheet, name)
			if err != nil {
				return nil, err
			}
			if formula != "" {
				out = append(out, formulaCell{cell: name, formula: formula})
			}
		}
	}
	return out, nil
}

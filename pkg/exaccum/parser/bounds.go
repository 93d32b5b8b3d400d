package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Bounds is the bounding box of non-empty cells in a sheet (1-based).
// A zero MaxRow means the sheet has no data.
type Bounds struct {
	MaxRow int
	MaxCol int
}

// DataBounds finds the last populated row and column of a sheet.
func DataBounds(f *excelize.File, sheetName string) (Bounds, error) {
	_, b, err := ReadGrid(f, sheetName)
	return b, err
}

// ReadGrid returns the unformatted cell grid of a sheet with its data bounds.
func ReadGrid(f *excelize.File, sheetName string) ([][]string, Bounds, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, Bounds{}, err
	}
	return rows, findDataBounds(rows), nil
}

// LastUsedRow returns the largest row index holding a non-empty cell, or 0.
func LastUsedRow(f *excelize.File, sheetName string) (int, error) {
	b, err := DataBounds(f, sheetName)
	if err != nil {
		return 0, err
	}
	return b.MaxRow, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) Bounds {
	var b Bounds
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if rowIdx+1 > b.MaxRow {
				b.MaxRow = rowIdx + 1
			}
			if colIdx+1 > b.MaxCol {
				b.MaxCol = colIdx + 1
			}
		}
	}
	return b
}

// Package table accumulates extracted rows into output sheets of an in-memory workbook.
package table

import (
	"bytes"
	"sync"

	"github.com/xuri/excelize/v2"
)

// placeholderSheet is the sheet excelize creates with every new file.
const placeholderSheet = "Sheet1"

// Workbook is an in-memory workbook that starts with no sheets and grows as
// tables are appended. It is safe for concurrent use.
type Workbook struct {
	mu   sync.Mutex
	file *excelize.File
	// sheets holds created sheet names in creation order.
	sheets []string
	// placeholder is true while the file still carries the default sheet.
	placeholder bool
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{
		file:        excelize.NewFile(),
		placeholder: true,
	}
}

// SheetNames returns the created sheets in creation order.
func (w *Workbook) SheetNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.sheets...)
}

// Empty reports whether no sheet has been created yet.
func (w *Workbook) Empty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.sheets) == 0
}

// WriteTo serializes the workbook as xlsx.
func (w *Workbook) WriteTo(buf *bytes.Buffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.file.WriteTo(buf)
	return err
}

// Close releases resources held by the underlying file.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

func (w *Workbook) hasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

// createSheet adds a sheet, dropping excelize's default sheet on first use.
// Callers hold w.mu.
func (w *Workbook) createSheet(name string) error {
	if w.placeholder && name == placeholderSheet {
		w.placeholder = false
		w.sheets = append(w.sheets, name)
		return nil
	}

	idx, err := w.file.NewSheet(name)
	if err != nil {
		return err
	}
	if w.placeholder {
		w.file.SetActiveSheet(idx)
		if err := w.file.DeleteSheet(placeholderSheet); err != nil {
			return err
		}
		w.placeholder = false
	}
	w.sheets = append(w.sheets, name)
	return nil
}

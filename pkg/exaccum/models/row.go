// Package models defines data structures passed between pipeline stages.
package models

// RowRecord is one row read from a source workbook together with where it came from.
type RowRecord struct {
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// R is the source row number (1-based).
	R int `json:"r"`
	// C maps column letter to cell value. Empty cells are absent.
	C map[string]interface{} `json:"c"`
}

// Value returns the value stored under the column letter.
func (r RowRecord) Value(col string) (interface{}, bool) {
	v, ok := r.C[col]
	return v, ok
}

package models

// Extraction is the result of reading one category out of a source workbook.
type Extraction struct {
	// Category is the category the rows were extracted for.
	Category string `json:"category"`
	// Detail contains line-item rows, in schema row order.
	Detail []RowRecord `json:"detail"`
	// Summary contains the aggregate row for the category (zero or one).
	Summary []RowRecord `json:"summary"`
}

// Total returns the number of extracted rows across both tables.
func (e *Extraction) Total() int {
	if e == nil {
		return 0
	}
	return len(e.Detail) + len(e.Summary)
}

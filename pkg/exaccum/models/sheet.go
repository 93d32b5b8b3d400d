package models

// SheetView is a read-only rendering of one accumulated sheet.
type SheetView struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Headers is the header row.
	Headers []string `json:"headers"`
	// Rows holds data rows below the header, padded to the header width.
	Rows [][]string `json:"rows"`
	// RowCount is the number of data rows (header excluded).
	RowCount int `json:"row_count"`
}

// Package parser provides excelize-based primitives for reading fixed-layout workbooks.
package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ResolveSheet picks a sheet by name marker.
// The first sheet whose name contains marker wins; otherwise the sheet at
// fallback index is used. An empty string means neither exists.
func ResolveSheet(sheets []string, marker string, fallback int) string {
	if marker != "" {
		for _, name := range sheets {
			if strings.Contains(name, marker) {
				return name
			}
		}
	}
	if fallback >= 0 && fallback < len(sheets) {
		return sheets[fallback]
	}
	return ""
}

// SheetAt returns the sheet name at index, or "" when out of range.
func SheetAt(f *excelize.File, index int) string {
	sheets := f.GetSheetList()
	if index < 0 || index >= len(sheets) {
		return ""
	}
	return sheets[index]
}

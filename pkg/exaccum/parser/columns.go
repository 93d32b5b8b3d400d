package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnSpan expands a column range such as "A:K" into its letters.
// A single letter ("C") yields one column.
func ColumnSpan(rangeRef string) ([]string, error) {
	// Remove $ signs
	rangeRef = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rangeRef), "$", ""))
	if rangeRef == "" {
		return nil, fmt.Errorf("empty column range")
	}

	parts := strings.Split(rangeRef, ":")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid column range %q", rangeRef)
	}

	first, err := excelize.ColumnNameToNumber(parts[0])
	if err != nil {
		return nil, err
	}
	last := first
	if len(parts) == 2 {
		if last, err = excelize.ColumnNameToNumber(parts[1]); err != nil {
			return nil, err
		}
	}
	if last < first {
		return nil, fmt.Errorf("invalid column range %q: end before start", rangeRef)
	}

	cols := make([]string, 0, last-first+1)
	for n := first; n <= last; n++ {
		name, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, nil
}

// ValidColumn reports whether name is a single column letter reference.
func ValidColumn(name string) bool {
	_, err := excelize.ColumnNameToNumber(name)
	return err == nil && !strings.Contains(name, ":")
}

package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/xuri/excelize/v2"
)

// ReadRow reads a single row of a sheet across the given columns.
// The returned bool is false when every column is empty; such rows carry no data.
func ReadRow(f *excelize.File, sheetName string, row int, cols []string) (models.RowRecord, bool, error) {
	cellMap := make(map[string]interface{}, len(cols))
	hasData := false

	for _, col := range cols {
		value, err := CellValue(f, sheetName, col, row)
		if err != nil {
			return models.RowRecord{}, false, err
		}
		if value == "" {
			continue
		}
		hasData = true
		cellMap[col] = ParseValue(value)
	}

	if !hasData {
		return models.RowRecord{}, false, nil
	}
	return models.RowRecord{
		Sheet: sheetName,
		R:     row,
		C:     cellMap,
	}, true, nil
}

// CellValue returns the stored value of a cell without number formatting.
// Formula cells yield their last computed value.
func CellValue(f *excelize.File, sheetName, col string, row int) (string, error) {
	cellName, err := excelize.JoinCellName(col, row)
	if err != nil {
		return "", err
	}
	return f.GetCellValue(sheetName, cellName, excelize.Options{RawCellValue: true})
}

// ParseValue coerces a raw cell string: integers become int64, other
// numbers float64, and anything else stays the original string.
func ParseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Numeric reports the numeric value of v. Strings are not coerced.
func Numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// IsBlank reports whether v is absent or a string that is empty after trimming.
func IsBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Text renders a value the way a cell would display it unformatted.
func Text(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	}
	return ""
}

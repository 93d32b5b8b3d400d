package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// TagQuery locates a row by a numeric tag column and a letter tag column.
type TagQuery struct {
	TagColumn    string
	Tag          float64
	LetterColumn string
	Letter       string
	// First and Last bound the scan (1-based, inclusive).
	First int
	Last  int
}

// FindTaggedRow scans the query's row range for the first row whose tag
// column holds the numeric tag and whose letter column equals the letter
// (trimmed, case-insensitive). found is false when no row matches.
func FindTaggedRow(f *excelize.File, sheetName string, q TagQuery) (row int, found bool, err error) {
	letter := strings.ToUpper(strings.TrimSpace(q.Letter))
	for r := q.First; r <= q.Last; r++ {
		tagRaw, err := CellValue(f, sheetName, q.TagColumn, r)
		if err != nil {
			return 0, false, err
		}
		tag, ok := Numeric(ParseValue(tagRaw))
		if !ok || tag != q.Tag {
			continue
		}
		letterRaw, err := CellValue(f, sheetName, q.LetterColumn, r)
		if err != nil {
			return 0, false, err
		}
		if MatchKey(letterRaw, letter) {
			return r, true, nil
		}
	}
	return 0, false, nil
}

// MatchKey compares a cell's text to a key, trimmed and case-insensitive.
func MatchKey(cell, key string) bool {
	return strings.ToUpper(strings.TrimSpace(cell)) == strings.ToUpper(strings.TrimSpace(key))
}

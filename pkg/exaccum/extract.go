package exaccum

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/table"
	"github.com/xuri/excelize/v2"
)

// Extract reads the detail and summary rows of a category from the workbook at path.
// Rows whose columns are all empty are dropped. An extraction with no rows is
// not an error; check Total.
func Extract(path, category string, opts Options) (*models.Extraction, error) {
	sc := opts.SchemaOrDefault()
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validationf("category is required")
	}
	cat, ok := sc.Category(category)
	if !ok {
		return nil, fmt.Errorf("%w %q (expected one of %s)",
			ErrUnsupportedCategory, category, strings.Join(sc.CategoryIDs(), ", "))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	ext := &models.Extraction{Category: category}

	if ext.Detail, err = extractDetail(f, cat.Detail); err != nil {
		return nil, err
	}
	if ext.Summary, err = extractSummary(f, cat.Summary); err != nil {
		return nil, err
	}
	return ext, nil
}

func extractDetail(f *excelize.File, rule schema.DetailRule) ([]models.RowRecord, error) {
	sheetName := parser.ResolveSheet(f.GetSheetList(), rule.Marker, rule.Fallback)
	if sheetName == "" {
		return nil, nil
	}
	cols, err := parser.ColumnSpan(rule.Columns)
	if err != nil {
		return nil, NewExtractionError(sheetName, "detail", err)
	}

	var rows []models.RowRecord
	for _, r := range rule.Rows {
		rec, ok, err := parser.ReadRow(f, sheetName, r, cols)
		if err != nil {
			return nil, NewExtractionError(sheetName, "detail", err)
		}
		if ok {
			rows = append(rows, rec)
		}
	}
	return rows, nil
}

// extractSummary reads the tagged row of the summary sheet. When the scan
// finds no tagged row the rule's default row is read instead.
func extractSummary(f *excelize.File, rule schema.SummaryRule) ([]models.RowRecord, error) {
	sheetName := parser.SheetAt(f, rule.Sheet)
	if sheetName == "" {
		return nil, nil
	}
	cols, err := parser.ColumnSpan(rule.Columns)
	if err != nil {
		return nil, NewExtractionError(sheetName, "summary", err)
	}

	row, found, err := parser.FindTaggedRow(f, sheetName, parser.TagQuery{
		TagColumn:    rule.TagColumn,
		Tag:          rule.Tag,
		LetterColumn: rule.LetterColumn,
		Letter:       rule.Letter,
		First:        rule.Scan[0],
		Last:         rule.Scan[1],
	})
	if err != nil {
		return nil, NewExtractionError(sheetName, "summary", err)
	}
	if !found {
		row = rule.DefaultRow
	}

	rec, ok, err := parser.ReadRow(f, sheetName, row, cols)
	if err != nil {
		return nil, NewExtractionError(sheetName, "summary", err)
	}
	if !ok {
		return nil, nil
	}
	return []models.RowRecord{rec}, nil
}

// Accumulate appends an extraction to the workbook's detail and summary
// tables. Both tables are created with headers even when the extraction is
// empty.
func Accumulate(w *table.Workbook, ext *models.Extraction, opts Options) (detail, summary int, err error) {
	sc := opts.SchemaOrDefault()
	if detail, err = table.AppendDetail(w, sc, ext.Detail); err != nil {
		return detail, 0, err
	}
	summary, err = table.AppendSummary(w, sc, ext.Summary)
	return detail, summary, err
}

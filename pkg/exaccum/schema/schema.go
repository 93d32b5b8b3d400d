// Package schema describes the fixed layout of a source workbook: which
// sheets, rows and columns hold each category, and where the accumulated
// tables and recompute cells live.
package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
	"gopkg.in/yaml.v3"
)

// DetailRule locates the line-item rows of a category.
type DetailRule struct {
	// Marker is a substring searched for in sheet names.
	Marker string `yaml:"marker"`
	// Fallback is the sheet index used when no name contains Marker.
	Fallback int `yaml:"fallback"`
	// Rows are the fixed 1-based rows to read.
	Rows []int `yaml:"rows"`
	// Columns is the column range read from each row, e.g. "A:K".
	Columns string `yaml:"columns"`
}

// SummaryRule locates the aggregate row of a category.
type SummaryRule struct {
	// Sheet is the index of the sheet scanned for the row.
	Sheet int `yaml:"sheet"`
	// Tag is the numeric value expected in TagColumn.
	Tag float64 `yaml:"tag"`
	// Letter is the value expected in LetterColumn.
	Letter       string `yaml:"letter"`
	TagColumn    string `yaml:"tag_column"`
	LetterColumn string `yaml:"letter_column"`
	// Scan is the inclusive row range searched for the tagged row.
	Scan [2]int `yaml:"scan"`
	// DefaultRow is read when the scan finds nothing.
	DefaultRow int    `yaml:"default_row"`
	Columns    string `yaml:"columns"`
}

// Category groups the rules for one extractable category.
type Category struct {
	// Key is the letter key the category maps to during recompute and preview.
	Key     string      `yaml:"key"`
	Detail  DetailRule  `yaml:"detail"`
	Summary SummaryRule `yaml:"summary"`
}

// TableSpec describes an accumulated output table.
type TableSpec struct {
	// Sheet is the output sheet name.
	Sheet string `yaml:"sheet"`
	// Columns is the target column range; its letters are the header labels.
	Columns string `yaml:"columns"`
	// Drop lists source columns never written to the table.
	Drop []string `yaml:"drop,omitempty"`
}

// Pair binds a factor column to the output column it multiplies into.
type Pair struct {
	Factor string `yaml:"factor"`
	Output string `yaml:"output"`
}

// RecomputeRule describes the in-place recompute layout.
type RecomputeRule struct {
	FirstDataRow   int    `yaml:"first_data_row"`
	KeyColumn      string `yaml:"key_column"`
	QuantityColumn string `yaml:"quantity_column"`
	Pairs          []Pair `yaml:"pairs"`
}

// Schema is the complete layout descriptor.
type Schema struct {
	Categories   map[string]Category `yaml:"categories"`
	DetailTable  TableSpec           `yaml:"detail_table"`
	SummaryTable TableSpec           `yaml:"summary_table"`
	Recompute    RecomputeRule       `yaml:"recompute"`
}

// Default returns the layout of the CON-A source workbook.
func Default() *Schema {
	return &Schema{
		Categories: map[string]Category{
			"1": {
				Key:    "A",
				Detail: DetailRule{Marker: "대가", Fallback: 0, Rows: []int{3, 4, 5}, Columns: "A:K"},
				Summary: SummaryRule{
					Sheet: 0, Tag: 1, Letter: "A", TagColumn: "A", LetterColumn: "B",
					Scan: [2]int{1, 14}, DefaultRow: 4, Columns: "A:L",
				},
			},
			"2": {
				Key:    "B",
				Detail: DetailRule{Marker: "참조", Fallback: 1, Rows: []int{7, 8, 9}, Columns: "A:K"},
				Summary: SummaryRule{
					Sheet: 0, Tag: 2, Letter: "B", TagColumn: "A", LetterColumn: "B",
					Scan: [2]int{1, 14}, DefaultRow: 5, Columns: "A:L",
				},
			},
		},
		DetailTable:  TableSpec{Sheet: "대가", Columns: "A:K"},
		SummaryTable: TableSpec{Sheet: "집계", Columns: "A:L", Drop: []string{"A"}},
		Recompute:    defaultRecompute(),
	}
}

func defaultRecompute() RecomputeRule {
	return RecomputeRule{
		FirstDataRow:   4,
		KeyColumn:      "B",
		QuantityColumn: "C",
		Pairs: []Pair{
			{Factor: "D", Output: "E"},
			{Factor: "F", Output: "G"},
			{Factor: "H", Output: "I"},
		},
	}
}

// Load reads a YAML schema file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML schema, fills omitted fields and validates it.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) applyDefaults() {
	for id, c := range s.Categories {
		if c.Summary.TagColumn == "" {
			c.Summary.TagColumn = "A"
		}
		if c.Summary.LetterColumn == "" {
			c.Summary.LetterColumn = "B"
		}
		if c.Key == "" {
			c.Key = c.Summary.Letter
		}
		s.Categories[id] = c
	}
	if s.DetailTable.Sheet == "" {
		s.DetailTable = Default().DetailTable
	}
	if s.SummaryTable.Sheet == "" {
		s.SummaryTable = Default().SummaryTable
	}
	if s.Recompute.KeyColumn == "" && len(s.Recompute.Pairs) == 0 {
		s.Recompute = defaultRecompute()
	}
}

// Validate checks that every rule is addressable.
func (s *Schema) Validate() error {
	if len(s.Categories) == 0 {
		return fmt.Errorf("schema: no categories defined")
	}
	for _, id := range s.CategoryIDs() {
		c := s.Categories[id]
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("schema: empty category id")
		}
		if len(c.Detail.Rows) == 0 {
			return fmt.Errorf("schema: category %q: detail rows are empty", id)
		}
		for _, r := range c.Detail.Rows {
			if r < 1 {
				return fmt.Errorf("schema: category %q: detail row %d is not positive", id, r)
			}
		}
		if _, err := parser.ColumnSpan(c.Detail.Columns); err != nil {
			return fmt.Errorf("schema: category %q: detail columns: %w", id, err)
		}
		sum := c.Summary
		if sum.Scan[0] < 1 || sum.Scan[1] < sum.Scan[0] {
			return fmt.Errorf("schema: category %q: invalid summary scan range %v", id, sum.Scan)
		}
		if sum.DefaultRow < 1 {
			return fmt.Errorf("schema: category %q: summary default row must be positive", id)
		}
		if !parser.ValidColumn(sum.TagColumn) || !parser.ValidColumn(sum.LetterColumn) {
			return fmt.Errorf("schema: category %q: invalid summary tag columns", id)
		}
		if _, err := parser.ColumnSpan(sum.Columns); err != nil {
			return fmt.Errorf("schema: category %q: summary columns: %w", id, err)
		}
	}
	for _, t := range []TableSpec{s.DetailTable, s.SummaryTable} {
		if t.Sheet == "" {
			return fmt.Errorf("schema: table sheet name is empty")
		}
		if _, err := parser.ColumnSpan(t.Columns); err != nil {
			return fmt.Errorf("schema: table %q columns: %w", t.Sheet, err)
		}
	}
	if s.DetailTable.Sheet == s.SummaryTable.Sheet {
		return fmt.Errorf("schema: detail and summary tables share sheet %q", s.DetailTable.Sheet)
	}
	return s.Recompute.validate()
}

func (r RecomputeRule) validate() error {
	if r.FirstDataRow < 1 {
		return fmt.Errorf("schema: recompute first data row must be positive")
	}
	if !parser.ValidColumn(r.KeyColumn) || !parser.ValidColumn(r.QuantityColumn) {
		return fmt.Errorf("schema: recompute key and quantity columns must be single columns")
	}
	written := map[string]bool{strings.ToUpper(r.QuantityColumn): true}
	for _, p := range r.Pairs {
		if !parser.ValidColumn(p.Factor) || !parser.ValidColumn(p.Output) {
			return fmt.Errorf("schema: recompute pair %s->%s is not addressable", p.Factor, p.Output)
		}
		written[strings.ToUpper(p.Output)] = true
	}
	if written[strings.ToUpper(r.KeyColumn)] {
		return fmt.Errorf("schema: recompute key column %s is also written", r.KeyColumn)
	}
	// Factors are read from the same document that outputs are written to.
	for _, p := range r.Pairs {
		if written[strings.ToUpper(p.Factor)] {
			return fmt.Errorf("schema: recompute factor column %s is also written", p.Factor)
		}
	}
	return nil
}

// Category returns the rules for a category id, trimmed.
func (s *Schema) Category(id string) (Category, bool) {
	c, ok := s.Categories[strings.TrimSpace(id)]
	return c, ok
}

// CategoryIDs returns category ids in sorted order.
func (s *Schema) CategoryIDs() []string {
	ids := make([]string, 0, len(s.Categories))
	for id := range s.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NormalizeKey maps a category id to its letter key; any other input is
// returned trimmed and upper-cased.
func (s *Schema) NormalizeKey(input string) string {
	input = strings.TrimSpace(input)
	if c, ok := s.Categories[input]; ok && c.Key != "" {
		return strings.ToUpper(c.Key)
	}
	return strings.ToUpper(input)
}

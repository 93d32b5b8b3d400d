package schema

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default schema invalid: %v", err)
	}
}

func TestNormalizeKey(t *testing.T) {
	s := Default()
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "A"},
		{" 2 ", "B"},
		{"a", "A"},
		{"c", "C"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := s.NormalizeKey(tt.input); got != tt.expected {
			t.Errorf("NormalizeKey(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseFillsDefaults(t *testing.T) {
	data := []byte(`
categories:
  "3":
    detail: {marker: 추가, fallback: 2, rows: [10, 11], columns: "A:K"}
    summary: {sheet: 0, tag: 3, letter: C, scan: [1, 20], default_row: 6, columns: "A:L"}
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	c, ok := s.Category("3")
	if !ok {
		t.Fatal("category 3 missing")
	}
	if c.Key != "C" {
		t.Errorf("expected key to default to summary letter, got %q", c.Key)
	}
	if c.Summary.TagColumn != "A" || c.Summary.LetterColumn != "B" {
		t.Errorf("expected default tag columns, got %q/%q", c.Summary.TagColumn, c.Summary.LetterColumn)
	}
	if s.DetailTable.Sheet != "대가" || s.SummaryTable.Sheet != "집계" {
		t.Errorf("expected default table sheets, got %q/%q", s.DetailTable.Sheet, s.SummaryTable.Sheet)
	}
	if len(s.Recompute.Pairs) != 3 {
		t.Errorf("expected default recompute pairs, got %v", s.Recompute.Pairs)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Schema)
		want   string
	}{
		{"no categories", func(s *Schema) { s.Categories = nil }, "no categories"},
		{"bad detail columns", func(s *Schema) {
			c := s.Categories["1"]
			c.Detail.Columns = "K:A"
			s.Categories["1"] = c
		}, "detail columns"},
		{"zero row", func(s *Schema) {
			c := s.Categories["2"]
			c.Detail.Rows = []int{0}
			s.Categories["2"] = c
		}, "not positive"},
		{"bad scan", func(s *Schema) {
			c := s.Categories["1"]
			c.Summary.Scan = [2]int{5, 1}
			s.Categories["1"] = c
		}, "scan range"},
		{"shared table sheet", func(s *Schema) { s.SummaryTable.Sheet = s.DetailTable.Sheet }, "share sheet"},
		{"factor overwritten", func(s *Schema) {
			s.Recompute.Pairs = append(s.Recompute.Pairs, Pair{Factor: "E", Output: "J"})
		}, "also written"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	data := []byte(`
categories:
  "1":
    key: A
    detail: {marker: 대가, fallback: 0, rows: [3, 4, 5], columns: "A:K"}
    summary: {sheet: 0, tag: 1, letter: A, scan: [1, 14], default_row: 4, columns: "A:L"}
detail_table: {sheet: Detail, columns: "A:K"}
summary_table: {sheet: Summary, columns: "A:L", drop: [A]}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.DetailTable.Sheet != "Detail" || s.SummaryTable.Drop[0] != "A" {
		t.Errorf("unexpected tables: %+v %+v", s.DetailTable, s.SummaryTable)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExampleFileMatchesDefault(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "..", "schema.example.yaml"))
	if err != nil {
		t.Fatalf("Load example: %v", err)
	}
	if !reflect.DeepEqual(s, Default()) {
		t.Errorf("example schema differs from Default:\n got %+v\nwant %+v", s, Default())
	}
}

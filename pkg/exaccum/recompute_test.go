package exaccum

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/xuri/excelize/v2"
)

func writeRecomputeSource(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "A3", &[]interface{}{"no", "key", "qty"})
	f.SetSheetRow("Sheet1", "A4", &[]interface{}{1, "A", 1, 2, 2, 3, 3, 4, 4, "note"})
	f.SetSheetRow("Sheet1", "A5", &[]interface{}{2, "B", 1, 5, 5, 6, 6, 7, 7})

	path := filepath.Join(t.TempDir(), "source.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRecompute(t *testing.T) {
	path := writeRecomputeSource(t)

	data, err := Recompute(path, "A", models.Edits{"Sheet1_0": 5}, DefaultOptions())
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := map[string]string{
		"C4": "5", "E4": "10", "G4": "15", "I4": "20", "J4": "note",
		"C5": "1", "E5": "5", "G5": "6", "I5": "7",
	}
	for cell, v := range want {
		if got, _ := f.GetCellValue("Sheet1", cell); got != v {
			t.Errorf("%s = %q, expected %q", cell, got, v)
		}
	}

	// The source file is untouched.
	src, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if got, _ := src.GetCellValue("Sheet1", "C4"); got != "1" {
		t.Errorf("source C4 = %q, expected 1", got)
	}
}

func TestRecomputeMapsCategoryToKey(t *testing.T) {
	path := writeRecomputeSource(t)

	data, err := Recompute(path, "2", models.Edits{"Sheet1_0": 2}, DefaultOptions())
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Sheet1", "I5"); got != "14" {
		t.Errorf("I5 = %q, expected 14", got)
	}
}

func TestRecomputeErrors(t *testing.T) {
	if _, err := Recompute(filepath.Join(t.TempDir(), "missing.xlsx"), "", nil, DefaultOptions()); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error before file access, got %v", err)
	}
	if _, err := Recompute(filepath.Join(t.TempDir(), "missing.xlsx"), "A", nil, DefaultOptions()); !errors.Is(err, ErrFileAccess) {
		t.Errorf("expected file access error, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	rows, err := Preview(writeRecomputeSource(t), "1", DefaultOptions())
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(rows) != 1 || rows[0].EditKey() != "Sheet1_0" || rows[0].Factors["H"] != 4 {
		t.Errorf("unexpected preview %+v", rows)
	}
}

func TestParseEdits(t *testing.T) {
	edits, err := ParseEdits(map[string]interface{}{"Sheet1_0": 5.0, "시트_2": "3.5"})
	if err != nil {
		t.Fatalf("ParseEdits failed: %v", err)
	}
	if v, ok := edits.Lookup("시트", 2); !ok || v != 3.5 {
		t.Errorf("Lookup(시트, 2) = %v, %v", v, ok)
	}

	bad := []map[string]interface{}{
		{"Sheet1_0": "five"},
		{"Sheet1": 1.0},
		{"Sheet1_": 1.0},
		{"Sheet1_0": true},
	}
	for _, values := range bad {
		if _, err := ParseEdits(values); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseEdits(%v) error = %v, expected validation error", values, err)
		}
	}
}

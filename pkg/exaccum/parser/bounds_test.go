package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFindDataBounds(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{},
		{"", "", "x"},
		{" "},
	}
	b := findDataBounds(rows)
	if b.MaxRow != 3 || b.MaxCol != 3 {
		t.Errorf("findDataBounds() = %+v, expected {MaxRow:3 MaxCol:3}", b)
	}

	if b := findDataBounds(nil); b.MaxRow != 0 {
		t.Errorf("expected empty bounds, got %+v", b)
	}
}

func TestLastUsedRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "h")
	f.SetCellValue("Sheet1", "C7", 3)

	last, err := LastUsedRow(f, "Sheet1")
	if err != nil {
		t.Fatalf("LastUsedRow failed: %v", err)
	}
	if last != 7 {
		t.Errorf("expected 7, got %d", last)
	}
}

package table

import (
	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
)

// Snapshot renders every sheet of the workbook, in creation order.
func Snapshot(w *Workbook) ([]models.SheetView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	views := make([]models.SheetView, 0, len(w.sheets))
	for _, name := range w.sheets {
		rows, bounds, err := parser.ReadGrid(w.file, name)
		if err != nil {
			return nil, err
		}

		view := models.SheetView{Name: name}
		for i := 0; i < bounds.MaxRow; i++ {
			var row []string
			if i < len(rows) {
				row = rows[i]
			}
			padded := make([]string, bounds.MaxCol)
			copy(padded, row)
			if i == 0 {
				view.Headers = padded
				continue
			}
			view.Rows = append(view.Rows, padded)
		}
		view.RowCount = len(view.Rows)
		views = append(views, view)
	}
	return views, nil
}

// RowCounts returns the number of data rows per sheet, header excluded.
func RowCounts(w *Workbook) (map[string]int, error) {
	views, err := Snapshot(w)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(views))
	for _, v := range views {
		counts[v.Name] = v.RowCount
	}
	return counts, nil
}

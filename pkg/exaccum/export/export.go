// Package export serializes accumulated workbooks for download.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/table"
)

// ContentType is the MIME type of serialized workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrSessionEmpty indicates an export was attempted before anything was accumulated.
var ErrSessionEmpty = errors.New("no data accumulated yet")

// Serialize writes the workbook as xlsx. Sheets keep their creation order.
func Serialize(w *table.Workbook) ([]byte, error) {
	if w == nil || w.Empty() {
		return nil, ErrSessionEmpty
	}
	var buf bytes.Buffer
	if err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName names an accumulated export: prefix plus the generation time.
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_150405"))
}

// ResultFileName names a recompute export.
func ResultFileName(prefix string) string {
	return prefix + "_result.xlsx"
}

package exaccum

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/recompute"
)

// Recompute copies the workbook at path, sets the quantity of every
// key-matched row that has an edit, rewrites its output cells as
// quantity × factor, and returns the whole workbook as xlsx. The source file
// is not modified.
func Recompute(path, key string, edits models.Edits, opts Options) ([]byte, error) {
	key = opts.SchemaOrDefault().NormalizeKey(key)
	if key == "" {
		return nil, validationf("key is required")
	}

	doc, err := recompute.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer doc.Close()

	if _, err := opts.engine().Apply(doc, key, edits); err != nil {
		return nil, fmt.Errorf("recompute %q: %w", key, err)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize recompute: %w", err)
	}
	return buf.Bytes(), nil
}

// Preview lists the rows Recompute would match for key, with their
// edit keys and factors.
func Preview(path, key string, opts Options) ([]models.PreviewRow, error) {
	key = opts.SchemaOrDefault().NormalizeKey(key)
	if key == "" {
		return nil, validationf("key is required")
	}

	doc, err := recompute.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer doc.Close()

	return opts.engine().Preview(doc, key)
}

// ParseEdits converts decoded "{sheet}_{index}" values into Edits.
func ParseEdits(values map[string]interface{}) (models.Edits, error) {
	edits, err := models.EditsFromValues(values)
	if err != nil {
		return nil, validationf("%s", err)
	}
	for k := range edits {
		if i := strings.LastIndex(k, "_"); i <= 0 || i == len(k)-1 {
			return nil, validationf("edit key %q is not of the form sheet_index", k)
		}
	}
	return edits, nil
}

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PreviewRow is a source row matched by key during a recompute scan.
type PreviewRow struct {
	// Sheet is the sheet the row belongs to.
	Sheet string `json:"sheet"`
	// R is the row number (1-based).
	R int `json:"r"`
	// Index is the zero-based matched-row ordinal within Sheet.
	Index int `json:"index"`
	// C maps column letter to the last-evaluated cell value.
	C map[string]interface{} `json:"c"`
	// Factors maps factor column letter to its numeric value.
	Factors map[string]float64 `json:"factors"`
}

// EditKey returns the key under which an edit for this row is submitted.
func (p PreviewRow) EditKey() string {
	return EditKey(p.Sheet, p.Index)
}

// Edits maps "{sheet}_{index}" keys to replacement quantities.
type Edits map[string]float64

// EditKey builds the edit key for a matched row.
func EditKey(sheet string, index int) string {
	return sheet + "_" + strconv.Itoa(index)
}

// Lookup returns the edit for the matched row, if any.
func (e Edits) Lookup(sheet string, index int) (float64, bool) {
	v, ok := e[EditKey(sheet, index)]
	return v, ok
}

// EditsFromValues converts loosely typed values (as decoded from JSON) into Edits.
// Numbers and numeric strings are accepted.
func EditsFromValues(values map[string]interface{}) (Edits, error) {
	edits := make(Edits, len(values))
	for k, raw := range values {
		switch v := raw.(type) {
		case float64:
			edits[k] = v
		case int:
			edits[k] = float64(v)
		case int64:
			edits[k] = float64(v)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, fmt.Errorf("edit %q: %w", k, err)
			}
			edits[k] = f
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("edit %q: %q is not a number", k, v)
			}
			edits[k] = f
		default:
			return nil, fmt.Errorf("edit %q: unsupported value %v", k, raw)
		}
	}
	return edits, nil
}

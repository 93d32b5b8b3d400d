package recompute

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
	"github.com/xuri/excelize/v2"
)

// Options configures the engine.
type Options struct {
	// Strict turns unparsable factor cells into a *ParseError. When false
	// they count as 0.
	Strict bool
	// Logger receives lenient-mode parse degradations. Nil disables logging.
	Logger *slog.Logger
}

// Engine applies quantity edits to rows matched by key.
type Engine struct {
	rule schema.RecomputeRule
	opts Options
}

// Match identifies one key-matching row.
type Match struct {
	Sheet string
	Row   int
	// Index is the zero-based ordinal of the match within Sheet.
	Index int
	// Values are the row's last-evaluated cells, starting at column A.
	Values []string
}

// Result summarizes an Apply run.
type Result struct {
	Matched int
	Edited  int
}

// New creates an engine for the given layout.
func New(rule schema.RecomputeRule, opts Options) *Engine {
	return &Engine{rule: rule, opts: opts}
}

// Scan calls fn for every row at or below the first data row whose key
// column equals key, sheet by sheet. The match index restarts at 0 for each
// sheet and advances on every match, edited or not.
func (e *Engine) Scan(doc *Document, key string, fn func(Match) error) error {
	keyCol, err := excelize.ColumnNameToNumber(e.rule.KeyColumn)
	if err != nil {
		return err
	}

	for _, sheet := range doc.Sheets() {
		rows, err := doc.Values().Rows(sheet)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}

		index := 0
		for r := e.rule.FirstDataRow; r <= len(rows); r++ {
			row := rows[r-1]
			if keyCol > len(row) || strings.TrimSpace(row[keyCol-1]) == "" {
				continue
			}
			if !parser.MatchKey(row[keyCol-1], key) {
				continue
			}
			if err := fn(Match{Sheet: sheet, Row: r, Index: index, Values: row}); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}

// Apply overwrites the quantity cell of every matched row that has an edit
// and writes quantity × factor into each output column. Output cells lose
// whatever formula they held.
func (e *Engine) Apply(doc *Document, key string, edits models.Edits) (Result, error) {
	var res Result
	formulas := doc.Formulas()

	err := e.Scan(doc, key, func(m Match) error {
		res.Matched++
		qty, ok := edits.Lookup(m.Sheet, m.Index)
		if !ok {
			return nil
		}

		factors, err := e.Factors(doc, m.Sheet, m.Row)
		if err != nil {
			return err
		}
		if err := formulas.SetNumber(m.Sheet, e.rule.QuantityColumn, m.Row, qty); err != nil {
			return err
		}
		for _, p := range e.rule.Pairs {
			if err := formulas.SetNumber(m.Sheet, p.Output, m.Row, qty*factors[p.Factor]); err != nil {
				return err
			}
		}
		res.Edited++
		return nil
	})
	return res, err
}

// Factors reads the factor columns of a row from the value projection.
func (e *Engine) Factors(doc *Document, sheet string, row int) (map[string]float64, error) {
	values := doc.Values()
	factors := make(map[string]float64, len(e.rule.Pairs))
	for _, p := range e.rule.Pairs {
		raw, err := values.Cell(sheet, p.Factor, row)
		if err != nil {
			return nil, err
		}
		n, err := e.number(raw, sheet, p.Factor, row)
		if err != nil {
			return nil, err
		}
		factors[p.Factor] = n
	}
	return factors, nil
}

// Preview lists every matched row with its values and factors.
func (e *Engine) Preview(doc *Document, key string) ([]models.PreviewRow, error) {
	var out []models.PreviewRow
	err := e.Scan(doc, key, func(m Match) error {
		cells := make(map[string]interface{})
		for i, v := range m.Values {
			if v == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			cells[col] = parser.ParseValue(v)
		}

		factors, err := e.Factors(doc, m.Sheet, m.Row)
		if err != nil {
			return err
		}
		out = append(out, models.PreviewRow{
			Sheet:   m.Sheet,
			R:       m.Row,
			Index:   m.Index,
			C:       cells,
			Factors: factors,
		})
		return nil
	})
	return out, err
}

// number parses a factor cell. Empty cells are 0 in both modes.
func (e *Engine) number(raw, sheet, col string, row int) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err == nil {
		return n, nil
	}

	cell, _ := excelize.JoinCellName(col, row)
	if e.opts.Strict {
		return 0, &ParseError{Sheet: sheet, Cell: cell, Value: raw}
	}
	if e.opts.Logger != nil {
		e.opts.Logger.Warn("factor is not a number, using 0",
			"sheet", sheet,
			"cell", cell,
			"value", raw,
		)
	}
	return 0, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/parser"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func styleRows(row, _ int) lipgloss.Style {
	if row == ltable.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

// renderSheets draws each accumulated sheet as a bordered table.
func renderSheets(views []models.SheetView) string {
	var b strings.Builder
	for i, v := range views {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d rows)", v.Name, v.RowCount)))
		b.WriteString("\n")
		t := ltable.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(styleRows).
			Headers(v.Headers...).
			Rows(v.Rows...)
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	if len(views) == 0 {
		b.WriteString(dimStyle.Render("no sheets"))
	}
	return b.String()
}

// renderPreview draws matched rows with their edit keys and factors.
func renderPreview(rows []models.PreviewRow, pairs []schema.Pair) string {
	if len(rows) == 0 {
		return dimStyle.Render("no matching rows")
	}

	headers := []string{"edit key", "row", "A", "B", "C"}
	for _, p := range pairs {
		headers = append(headers, p.Factor, p.Output)
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{r.EditKey(), fmt.Sprint(r.R), parser.Text(r.C["A"]), parser.Text(r.C["B"]), parser.Text(r.C["C"])}
		for _, p := range pairs {
			line = append(line, parser.Text(r.Factors[p.Factor]), parser.Text(r.C[p.Output]))
		}
		data = append(data, line)
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(styleRows).
		Headers(headers...).
		Rows(data...).
		String()
}

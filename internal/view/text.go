package view

import (
	"fmt"
	"strings"
)

// RenderPanel formats a panel for terminal output.
func RenderPanel(p Panel) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("== %s [%s] ==\n", p.Title, p.Badge))
	width := 0
	for _, r := range p.Rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}
	for _, r := range p.Rows {
		b.WriteString(fmt.Sprintf("  %-*s  %s\n", width, r.Label, r.Value))
	}
	for _, n := range p.Notes {
		b.WriteString(fmt.Sprintf("  * %s\n", n))
	}
	if p.Footer != "" {
		b.WriteString(fmt.Sprintf("  %s\n", p.Footer))
	}
	return b.String()
}

// RenderTable formats a table for terminal output.
func RenderTable(t Table) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("== %s ==\n", t.Title))
	if len(t.Rows) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", t.Empty))
		return b.String()
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		b.WriteString(" ")
		for i, cell := range cells {
			b.WriteString(fmt.Sprintf(" %-*s", widths[i], cell))
		}
		b.WriteString("\n")
	}
	writeRow(t.Headers)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

// Package formatter renders run summaries as aligned text tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minWidth is the narrowest a column is drawn, so the separator row
// always carries at least "---".
const minWidth = 3

// Table renders header and rows as a pipe table whose columns are padded
// to the widest cell by display width. Short rows are padded with blanks
// and cells beyond the header are dropped.
func Table(header []string, rows [][]string) string {
	if len(header) == 0 {
		return ""
	}

	table := make([][]string, 0, len(rows)+1)
	table = append(table, cleanRow(header, len(header)))

	for _, row := range rows {
		table = append(table, cleanRow(row, len(header)))
	}

	widths := make([]int, len(header))
	for i := range widths {
		widths[i] = minWidth
	}

	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	writeRow(&sb, table[0], widths)
	writeSeparator(&sb, widths)

	for _, row := range table[1:] {
		writeRow(&sb, row, widths)
	}

	return sb.String()
}

func cleanRow(row []string, n int) []string {
	cells := make([]string, n)

	for i := 0; i < n && i < len(row); i++ {
		cell := strings.TrimSpace(row[i])
		cell = strings.ReplaceAll(cell, "\n", " ")
		cells[i] = strings.ReplaceAll(cell, "|", `\|`)
	}

	return cells
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	sb.WriteString("|")

	for i, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(cell)

		if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}

		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, widths []int) {
	sb.WriteString("|")

	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

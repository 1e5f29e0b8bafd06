// Package formatter renders normalized rows as an aligned text table for the terminal.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"messecrawl/internal/models"
)

// DefaultMaxCellWidth limits the display width of a single cell.
const DefaultMaxCellWidth = 40

// Preview renders the first limit rows (all rows if limit <= 0) as a pipe table.
// Columns are padded by display width, so CJK and umlauts line up.
func Preview(rows []models.ExhibitorRow, limit, maxCellWidth int) string {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	table := make([][]string, 0, len(rows)+1)
	table = append(table, models.CSVHeader)

	for _, row := range rows {
		table = append(table, row.Record())
	}

	return strings.Join(renderTable(table, maxCellWidth), "\n")
}

// renderTable aligns table rows; the first row is the header and gets a separator below it.
func renderTable(table [][]string, maxCellWidth int) []string {
	if len(table) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	cells := make([][]string, len(table))
	for r, row := range table {
		cells[r] = make([]string, colCount)
		for c := 0; c < len(row); c++ {
			cells[r][c] = clip(row[c], maxCellWidth)
		}
	}

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for _, row := range cells {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(cells)+1)

	for i, row := range cells {
		result = append(result, renderRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j := range sep {
				sep[j] = strings.Repeat("-", colWidths[j])
			}

			result = append(result, renderRow(sep, colWidths))
		}
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, content := range row {
		sb.WriteString(" ")
		sb.WriteString(content)

		// Pad with spaces based on display width
		if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

// clip truncates s to maxWidth display columns and escapes pipes and line breaks.
func clip(s string, maxWidth int) string {
	s = strings.NewReplacer("|", `\|`, "\r", " ", "\n", " ").Replace(s)

	if maxWidth > 0 && runewidth.StringWidth(s) > maxWidth {
		return runewidth.Truncate(s, maxWidth, "…")
	}

	return s
}

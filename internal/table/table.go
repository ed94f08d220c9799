// Package table renders GitHub-flavored Markdown pipe tables.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minDelimiterWidth is the narrowest delimiter cell GFM accepts comfortably.
const minDelimiterWidth = 3

// Alignment controls the colons in the delimiter row.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Heading is one table column.
type Heading struct {
	Name  string
	Align Alignment
}

// Render returns the table for headings and rows without a trailing newline.
// Missing cells are left blank and surplus cells are dropped. Columns are
// padded to their display width so the source stays readable.
func Render(headings []Heading, rows [][]string) string {
	if len(headings) == 0 {
		return ""
	}

	header := make([]string, len(headings))
	widths := make([]int, len(headings))
	for i, h := range headings {
		header[i] = Escape(h.Name)
		widths[i] = max(runewidth.StringWidth(header[i]), minDelimiterWidth)
	}

	body := make([][]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(headings))
		for i := range headings {
			if i < len(row) {
				cells[i] = Escape(row[i])
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cells[i]))
		}
		body[r] = cells
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(header, widths))
	lines = append(lines, formatDelimiter(headings, widths))
	for _, cells := range body {
		lines = append(lines, formatRow(cells, widths))
	}

	return strings.Join(lines, "\n")
}

// Escape makes s safe for a single table cell.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatRow(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range cells {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cell, widths[i]))
		sb.WriteString(" |")
	}
	return sb.String()
}

func formatDelimiter(headings []Heading, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, h := range headings {
		w := widths[i]
		sb.WriteString(" ")
		switch h.Align {
		case AlignLeft:
			sb.WriteString(":" + strings.Repeat("-", w-1))
		case AlignCenter:
			sb.WriteString(":" + strings.Repeat("-", w-2) + ":")
		case AlignRight:
			sb.WriteString(strings.Repeat("-", w-1) + ":")
		default:
			sb.WriteString(strings.Repeat("-", w))
		}
		sb.WriteString(" |")
	}
	return sb.String()
}

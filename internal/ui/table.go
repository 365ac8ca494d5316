// Package ui renders the aligned tables printed by the probe and targets
// commands.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Table is a left-aligned text table. Widths are measured in terminal
// cells, so styled output lines up the same as plain output.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	// MaxWidth truncates cells wider than this many cells; 0 disables it.
	MaxWidth int
	// Styled turns on lipgloss colouring.
	Styled bool
}

const columnGap = "  "

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Append adds a row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the table with a trailing newline.
func (t *Table) Render() string {
	widths := t.columnWidths()
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.style(titleStyle, t.Title))
		b.WriteByte('\n')
	}
	if len(t.Header) > 0 {
		t.writeRow(&b, t.Header, widths, func(_ int, s string) string { return t.style(headerStyle, s) })
	}
	for _, row := range t.Rows {
		t.writeRow(&b, row, widths, func(_ int, s string) string { return t.style(styleValue(s), s) })
	}
	return b.String()
}

func (t *Table) columnWidths() []int {
	var widths []int
	grow := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(truncate(cell, t.MaxWidth)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	grow(t.Header)
	for _, row := range t.Rows {
		grow(row)
	}
	return widths
}

func (t *Table) writeRow(b *strings.Builder, row []string, widths []int, paint func(int, string) string) {
	var line strings.Builder
	for i, cell := range row {
		cell = truncate(cell, t.MaxWidth)
		if i > 0 {
			line.WriteString(columnGap)
		}
		padded := cell
		if i < len(row)-1 {
			padded = runewidth.FillRight(cell, widths[i])
		}
		// pad before painting so escape codes do not count as width
		line.WriteString(paint(i, cell) + padded[len(cell):])
	}
	b.WriteString(strings.TrimRight(line.String(), " "))
	b.WriteByte('\n')
}

func (t *Table) style(s lipgloss.Style, text string) string {
	if !t.Styled || text == "" {
		return text
	}
	return s.Render(text)
}

// styleValue colours the small vocabulary the tables use.
func styleValue(value string) lipgloss.Style {
	switch value {
	case "yes", "little", "big", "twos-complement":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "no":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	case "unknown", "mixed", "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle()
	}
}

// YesNo spells a flag for a table cell.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

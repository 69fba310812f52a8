package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	tableHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2)
)

// RenderTable renders a titled rounded-border table sized to its content,
// capped to the terminal width.
func RenderTable(title string, headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	if width := GetTerminalWidth(); width > 2 {
		t = t.Width(min(tableContentWidth(headers, rows), width-2))
	}

	var out strings.Builder
	if title != "" {
		out.WriteString(tableTitleStyle.Render(title))
		out.WriteString("\n")
	}
	out.WriteString(t.Render())
	return out.String()
}

// RenderPanel renders content inside a rounded-border panel with a title.
func RenderPanel(title, content string) string {
	var body strings.Builder
	if title != "" {
		body.WriteString(tableTitleStyle.Render(title))
		body.WriteString("\n")
	}
	body.WriteString(content)
	return panelStyle.Render(body.String())
}

// tableContentWidth estimates the natural width of a table: widest cell per
// column plus padding and borders.
func tableContentWidth(headers []string, rows [][]string) int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	total := 1 // left border
	for _, w := range widths {
		total += w + 2 + 1 // padding + column border
	}
	return total
}

package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Flexoki dark palette.
var (
	borderColor = lipgloss.Color("#282726")
	ruleColor   = lipgloss.Color("#575653")
	mutedColor  = lipgloss.Color("#6F6E69")
	textColor   = lipgloss.Color("#FFFCF0")
	accentColor = lipgloss.Color("#3AA99F")
	warnColor   = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(textColor).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	cellStyle   = lipgloss.NewStyle().Foreground(textColor)
	noteStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	warnStyle   = lipgloss.NewStyle().Foreground(warnColor)
	ruleStyle   = lipgloss.NewStyle().Foreground(ruleColor)
)

const titleWidth = 55

// Separator is a row that RenderTable draws as a horizontal rule.
var Separator = []string{"---"}

// Table is a bordered text table. The first column is a label; the rest
// hold figures and are right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders title centered in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(titleWidth).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t with box-drawing borders.
func RenderTable(t Table) string {
	widths := columnWidths(t)
	if len(widths) == 0 {
		return ""
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(widths, t.Headers, headerStyle))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(line(widths, row, cellStyle))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == Separator[0]
}

// columnWidths measures in runes so "€" counts as one column.
func columnWidths(t Table) []int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) && len(row) > n {
			n = len(row)
		}
	}
	widths := make([]int, n)
	measure := func(cells []string) {
		for i, c := range cells {
			if w := utf8.RuneCountInString(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			measure(row)
		}
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return ruleStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func line(widths []int, cells []string, style lipgloss.Style) string {
	bar := ruleStyle.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		if i == 0 {
			cell += pad
		} else {
			cell = pad + cell
		}
		b.WriteString(style.Render(" " + cell + " "))
		b.WriteString(bar)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderNote renders an indented line below a table, in the warning color
// when warn is set.
func RenderNote(text string, warn bool) string {
	if warn {
		return "  " + warnStyle.Render(text)
	}
	return "  " + noteStyle.Render(text)
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline scales values against their maximum, one block per value.
func sparkline(values []float64) string {
	var top float64
	for _, v := range values {
		top = max(top, v)
	}
	if top == 0 {
		top = 1
	}
	last := len(sparkBlocks) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		out[i] = sparkBlocks[min(max(int(v/top*float64(last)), 0), last)]
	}
	return string(out)
}

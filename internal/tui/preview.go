package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	previewHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	previewBodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	doneStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
)

// RenderPreview summarizes a roster before processing: its column names and
// up to limit leading rows.
func RenderPreview(header []string, records [][]string, limit int) string {
	var b strings.Builder
	b.WriteString(previewHeadStyle.Render("Reading CSV with columns:"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%q", header))
	b.WriteString("\n")
	b.WriteString(previewHeadStyle.Render("First few rows:"))
	b.WriteString("\n")

	if limit > len(records) {
		limit = len(records)
	}
	if limit <= 0 {
		b.WriteString(previewBodyStyle.Render("(no rows)"))
		b.WriteString("\n")
		return b.String()
	}
	lines := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		lines = append(lines, fmt.Sprintf("%d  %s", i, strings.Join(records[i], " | ")))
	}
	b.WriteString(previewBodyStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	return b.String()
}

// RenderDone is the confirmation printed after the output file is written.
func RenderDone(path string, rows int) string {
	return doneStyle.Render("file ready :)") + fmt.Sprintf(" %s (%d rows)\n", path, rows)
}

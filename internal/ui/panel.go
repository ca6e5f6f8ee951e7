package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := min(done*width/total, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := done * 100 / total
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme. maxWidth limits the
// outer width; zero means unlimited.
func Panel(w io.Writer, lines []string, maxWidth int) {
	style := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	if maxWidth > 0 {
		style = style.MaxWidth(maxWidth)
	}
	fmt.Fprintln(w, style.Render(strings.Join(lines, "\n")))
}

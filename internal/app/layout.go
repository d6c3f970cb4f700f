package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// truncateToWidth shortens text to width cells, marking the cut with an
// ellipsis. A non-positive width leaves text alone.
func truncateToWidth(text string, width int) string {
	switch {
	case width <= 0, xansi.StringWidth(text) <= width:
		return text
	case width == 1:
		return ellipsis
	}
	return xansi.Truncate(text, width, ellipsis)
}

func padToWidth(text string, width int) string {
	gap := width - xansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

func fitToWidth(text string, width int) string {
	return padToWidth(truncateToWidth(text, width), width)
}

func indentBlock(block string, spaces int) string {
	if spaces <= 0 {
		return block
	}
	return lipgloss.NewStyle().MarginLeft(spaces).Render(block)
}

// renderStatusLine puts help on the left and status flush right. Help gives
// way first when the row is too narrow for both.
func renderStatusLine(width int, help, status string) string {
	if width <= 0 {
		return help + " " + status
	}
	room := width - lipgloss.Width(status) - 1
	help = truncateToWidth(help, max(1, room))
	gap := max(1, width-lipgloss.Width(help)-lipgloss.Width(status))
	return help + strings.Repeat(" ", gap) + status
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}

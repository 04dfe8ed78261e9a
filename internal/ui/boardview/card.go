package boardview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/model"
	"github.com/nhle/genius-board/internal/theme"
)

// Card geometry in terminal rows. Hit-testing for mouse drops depends on
// every card rendering at exactly this height, so renderCard pads or
// truncates to match.
const (
	cardContentLines = 2
	cardHeight       = cardContentLines + 2 // plus top and bottom border
	columnHeaderRows = 3                    // border, title line, counts line
)

// renderCard draws a single card at the given inner width.
func renderCard(c model.Card, innerWidth int, style lipgloss.Style) string {
	title := c.Title
	if c.Completed {
		title = "✓ " + title
	}
	title = truncate(title, innerWidth)

	badges := []string{}
	if c.Priority != "" {
		badges = append(badges, theme.PriorityStyle(c.Priority).Render(c.Priority))
	}
	if c.Status != "" {
		badges = append(badges, theme.StatusStyle(c.Status).Render(c.Status))
	}
	if c.DueDate != "" {
		badges = append(badges, theme.HelpStyle.Render(c.DueDate))
	}
	meta := strings.Join(badges, " ")

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(innerWidth).Render(title),
		lipgloss.NewStyle().Width(innerWidth).MaxHeight(1).Render(meta),
	)

	return style.Width(innerWidth + 2).Render(content)
}

// renderColumnHeader draws the column title with its team counts badge.
func renderColumnHeader(title string, accent lipgloss.AdaptiveColor, counts string, innerWidth int) string {
	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Width(innerWidth).
		Render(truncate(title, innerWidth))

	countsLine := theme.HelpStyle.Width(innerWidth).Render(counts)

	return lipgloss.JoinVertical(lipgloss.Left, titleLine, countsLine)
}

// formatCounts renders the team distribution for a column header, e.g.
// "2★ 1● 1▽" for two geniuses, one competency, one frustration.
func formatCounts(genius, competency, frustration int) string {
	return fmt.Sprintf("%d★ %d● %d▽", genius, competency, frustration)
}

// formatBinCount renders the item count shown under a bin title.
func formatBinCount(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}

// truncate cuts s to at most width cells, appending an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

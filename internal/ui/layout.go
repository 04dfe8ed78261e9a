package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/theme"
)

// The frame is one header row and one status-bar row; everything
// between belongs to the active view.
const (
	headerRows    = 1
	statusBarRows = 1
)

// Layout slices the terminal into the header / content / status-bar
// frame shared by every view.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the rows available to the active view.
func (l Layout) ContentHeight() int {
	return l.Height - headerRows - statusBarRows
}

// RenderHeader renders the title bar: board context on the left, data
// freshness (live / cached / offline) on the right.
func (l Layout) RenderHeader(title string, dataStatus string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(dataStatus)
	return l.fillBetween(theme.HeaderStyle, left, right)
}

// RenderStatusBar renders the bottom bar carrying key hints or the
// current notice.
func (l Layout) RenderStatusBar(hints string) string {
	return l.fillBetween(
		theme.StatusBarStyle,
		theme.StatusBarStyle.Render(hints),
		"",
	)
}

// fillBetween joins left and right with a styled filler so the bar
// spans the full terminal width.
func (l Layout) fillBetween(style lipgloss.Style, left, right string) string {
	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderWithFrame stacks the header, the active view, and the status
// bar into the full terminal frame.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

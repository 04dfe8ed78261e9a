package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/genius-board/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorTeal    = lipgloss.AdaptiveColor{Dark: "#4DD0E1", Light: "#00838F"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the card detail content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ColumnStyle is the base frame for a board column.
var ColumnStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// CardStyle is the base style for a card in a column.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.NormalBorder()).
	BorderForeground(ColorBorder)

// SelectedCardStyle highlights the currently focused card.
var SelectedCardStyle = CardStyle.
	Bold(true).
	BorderForeground(ColorBlue)

// CarriedCardStyle marks the card being moved in move mode.
var CarriedCardStyle = CardStyle.
	Bold(true).
	BorderForeground(ColorMagenta)

// DropTargetStyle marks the column a carried card would land in.
var DropTargetStyle = ColumnStyle.
	BorderForeground(ColorMagenta)

// BinStyle frames the draft and archive edge panels.
var BinStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.DoubleBorder()).
	BorderForeground(ColorSubtle)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ColumnColor returns the accent color for a working-genius column header.
func ColumnColor(col model.ColumnID) lipgloss.AdaptiveColor {
	switch col {
	case model.ColumnWonder:
		return ColorBlue
	case model.ColumnInvention:
		return ColorMagenta
	case model.ColumnDiscernment:
		return ColorTeal
	case model.ColumnGalvanizing:
		return ColorOrange
	case model.ColumnEnablement:
		return ColorGreen
	case model.ColumnTenacity:
		return ColorYellow
	default:
		return ColorGray
	}
}

// StatusStyle returns a color-coded style for the given project status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.StatusOnTrack:
		return base.Foreground(ColorGreen)
	case model.StatusAtRisk:
		return base.Foreground(ColorYellow)
	case model.StatusBlocked:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for the given priority label.
func PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorOrange)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// AssessmentStyle returns a color-coded style for a team member's
// relationship to a genius (genius, competency, or frustration).
func AssessmentStyle(a model.GeniusAssessment) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch a {
	case model.AssessmentGenius:
		return base.Foreground(ColorGreen).Bold(true)
	case model.AssessmentCompetency:
		return base.Foreground(ColorYellow)
	case model.AssessmentFrustration:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

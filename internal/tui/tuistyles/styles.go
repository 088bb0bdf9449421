// Package tuistyles holds the lipgloss palette and styles shared by the tui
// package and its components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary    = lipgloss.Color("#F28C28") // saffron
	ColorSecondary  = lipgloss.Color("#138808") // green
	ColorAccent     = lipgloss.Color("#3B82F6")
	ColorSuccess    = lipgloss.Color("#22C55E")
	ColorDanger     = lipgloss.Color("#EF4444")
	ColorMuted      = lipgloss.Color("#6B7280")
	ColorBorder     = lipgloss.Color("#4B5563")
	ColorForeground = lipgloss.Color("#E5E7EB")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	InputLabelStyle = lipgloss.NewStyle().
			Width(18).
			Foreground(ColorMuted)

	FocusedLabelStyle = InputLabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)
)

// MetricTrendStyle colours a trend green when it is good for the taxpayer
func MetricTrendStyle(favourable bool) lipgloss.Style {
	if favourable {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns the arrow drawn next to a trend
func TrendIndicator(favourable bool) string {
	if favourable {
		return "▼"
	}
	return "▲"
}

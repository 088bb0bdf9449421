package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/itax/internal/tui/tuistyles"
)

// MetricCard shows one headline figure, such as the total tax under a regime
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Highlight   bool // drawn with the accent border, used for the recommended regime
	Width       int
}

// Trend is a change shown under the value. Favourable trends (less tax) render green.
type Trend struct {
	Favourable bool
	Change     string // e.g. "saves ₹1,11,800"
}

// NewMetricCard creates a card with the default width
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 28,
	}
}

// WithTrend attaches a trend line
func (m *MetricCard) WithTrend(favourable bool, change string) *MetricCard {
	m.Trend = &Trend{Favourable: favourable, Change: change}
	return m
}

// WithDescription adds a muted subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithHighlight marks the card as the selected one
func (m *MetricCard) WithHighlight(on bool) *MetricCard {
	m.Highlight = on
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) trendLine() string {
	if m.Trend == nil {
		return ""
	}
	style := tuistyles.MetricTrendStyle(m.Trend.Favourable)
	return style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Trend.Favourable), m.Trend.Change))
}

// Render draws the card inside a rounded border
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if t := m.trendLine(); t != "" {
		content += "\n" + t
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	border := tuistyles.ColorBorder
	if m.Highlight {
		border = tuistyles.ColorSecondary
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact draws "label: value trend" on one line
func (m *MetricCard) RenderCompact() string {
	line := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if t := m.trendLine(); t != "" {
		line += " " + t
	}
	return line
}

// MetricGrid lays cards out left to right, wrapping after columns cards
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/rgehrsitz/itax/internal/tui/components"
	"github.com/rgehrsitz/itax/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.scene {
	case SceneCalculator:
		content = m.renderCalculator()
	case SceneBreakdown:
		content = m.renderBreakdown()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("ITAX - Old vs New Regime")
	crumb := fmt.Sprintf("FY %s / %s", m.financialYear(), m.scene)
	if m.config != nil {
		crumb += " / " + m.profileName()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{formatShortcut("tab", "next field")}
	if m.config != nil {
		shortcuts = append(shortcuts, formatShortcut("ctrl+n/p", "profile"))
	}
	shortcuts = append(shortcuts,
		formatShortcut("ctrl+b", "breakdown"),
		formatShortcut("ctrl+s", "save"),
		formatShortcut("f1", "help"),
		formatShortcut("esc", "quit"),
	)
	bar := strings.Join(shortcuts, " • ")
	if m.status != "" {
		bar += "\n" + tuistyles.InfoStyle.Render(m.status)
	}
	return tuistyles.StatusBarStyle.Render(bar)
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderCalculator() string {
	var b strings.Builder

	for i, in := range m.inputs {
		label := tuistyles.InputLabelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = tuistyles.FocusedLabelStyle.Render("› " + fieldLabels[i])
		}
		b.WriteString(label + " " + in.View() + "\n")
	}

	if m.inputErr != "" {
		b.WriteString("\n" + tuistyles.ErrorStyle.Render(m.inputErr) + "\n")
	}

	if m.comparison == nil {
		b.WriteString("\n" + tuistyles.SubtitleStyle.Render("Type an income to compare both regimes."))
		return b.String()
	}

	b.WriteString("\n" + renderComparison(*m.comparison, m.width))
	return b.String()
}

// renderComparison shows one card per regime and the recommendation
func renderComparison(cmp domain.RegimeComparison, width int) string {
	card := func(res domain.TaxComputationResult) *components.MetricCard {
		c := components.NewMetricCard(res.Regime.Label(), output.FormatINR(res.TotalTax)).
			WithDescription(fmt.Sprintf("taxable %s, %s effective",
				output.FormatShort(res.TaxableIncome), output.FormatPercent(res.EffectiveRatePercent))).
			WithHighlight(res.Regime == cmp.RecommendedRegime)
		if res.Regime == cmp.RecommendedRegime && cmp.AbsoluteSavings.IsPositive() {
			c.WithTrend(true, "saves "+output.FormatINR(cmp.AbsoluteSavings))
		}
		return c
	}

	columns := 2
	if width > 0 && width < 64 {
		columns = 1
	}
	grid := components.MetricGrid([]*components.MetricCard{card(cmp.OldResult), card(cmp.NewResult)}, columns)

	verdict := fmt.Sprintf("Recommended: %s", cmp.RecommendedRegime.Label())
	if cmp.AbsoluteSavings.IsZero() {
		verdict += " (both regimes cost the same)"
	} else {
		verdict += fmt.Sprintf(" (saves %s)", output.FormatINR(cmp.AbsoluteSavings))
	}
	return grid + "\n" + tuistyles.TitleStyle.Render(verdict)
}

func (m Model) renderBreakdown() string {
	if m.comparison == nil {
		return tuistyles.SubtitleStyle.Render("Nothing to break down yet. Press esc and enter an income.")
	}
	cell := lipgloss.NewStyle().MarginRight(4)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(components.SlabTable(m.comparison.OldResult)),
		components.SlabTable(m.comparison.NewResult),
	)
}

func (m Model) renderHelp() string {
	keys := [][2]string{
		{"tab / ↓", "next field"},
		{"shift+tab / ↑", "previous field"},
		{"ctrl+b", "toggle slab breakdown"},
		{"ctrl+n / p", "next / previous profile from the loaded file"},
		{"ctrl+r", "clear all fields"},
		{"ctrl+s", "save the current comparison"},
		{"f1", "toggle this help"},
		{"esc", "back, or quit from the calculator"},
	}
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(tuistyles.HelpKeyStyle.Width(16).Render(k[0]) + tuistyles.HelpDescStyle.Render(k[1]) + "\n")
	}
	b.WriteString("\nAmounts accept commas and suffixes: 15,00,000  15L  1.2cr  50k\n")
	b.WriteString("Age accepts years (e.g. 67) or a bracket: normal, senior, super_senior\n")
	for _, a := range output.Assumptions(m.engine.Rules) {
		b.WriteString(tuistyles.SubtitleStyle.Render("• "+a) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderError() string {
	return tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
		tuistyles.SubtitleStyle.Render("Press esc to dismiss or q to quit.")
}

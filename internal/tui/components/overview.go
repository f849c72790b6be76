package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/tui/themes"
	"github.com/payarise/payarise/internal/tui/viewmodel"
)

// OverviewModel shows the summary figures above the charts.
type OverviewModel struct {
	theme themes.Theme
	view  viewmodel.OverviewView
	width int
}

// NewOverviewModel creates an empty overview.
func NewOverviewModel(theme themes.Theme) OverviewModel {
	return OverviewModel{theme: theme}
}

// SetOverview replaces the figures.
func (m *OverviewModel) SetOverview(v viewmodel.OverviewView) {
	m.view = v
}

// Resize updates the available width.
func (m *OverviewModel) Resize(width int) {
	m.width = width
}

// View renders the three figures side by side.
func (m OverviewModel) View() string {
	tile := func(label, value string, style lipgloss.Style) string {
		return m.theme.Card.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Faint.Render(label),
			style.Render(value),
		))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		tile("Avg Success", m.view.AvgLabel(), m.theme.StatusSuccess),
		" ",
		tile("Banks Reported", fmt.Sprintf("%d", m.view.BanksReported), m.theme.StatusInfo),
		" ",
		tile("High-risk Reasons", fmt.Sprintf("%d", m.view.HighRisk), m.theme.StatusError),
	)
}

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/tui/themes"
	"github.com/payarise/payarise/internal/tui/viewmodel"
)

const (
	chartLabelWidth = 14
	chartValueWidth = 8
)

// ChartModel draws a horizontal bar chart. It is created once and its data
// replaced in place on every refresh.
type ChartModel struct {
	theme   themes.Theme
	bar     progress.Model
	data    viewmodel.ChartView
	width   int
	updates int
}

// NewChartModel creates a chart with a title and no data yet.
func NewChartModel(theme themes.Theme, title string, kind viewmodel.ChartKind) ChartModel {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Primary)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Border)

	return ChartModel{
		theme: theme,
		bar:   bar,
		data:  viewmodel.ChartView{Title: title, Kind: kind},
		width: 60,
	}
}

// SetData replaces the labels and values, keeping the title and kind.
func (m *ChartModel) SetData(data viewmodel.ChartView) {
	m.data.Labels = data.Labels
	m.data.Values = data.Values
	m.updates++
}

// Data returns the current chart data.
func (m ChartModel) Data() viewmodel.ChartView {
	return m.data
}

// Updates returns how many times the data has been replaced.
func (m ChartModel) Updates() int {
	return m.updates
}

// Resize updates the chart width.
func (m *ChartModel) Resize(width int) {
	if width <= 0 {
		return
	}
	m.width = width
	m.bar.Width = max(10, width-chartLabelWidth-chartValueWidth-2)
}

// View renders the chart.
func (m ChartModel) View() string {
	lines := []string{m.theme.Subtitle.Bold(true).Render(m.data.Title)}

	if m.data.IsEmpty() {
		lines = append(lines, m.theme.StatusPending.Render("No data yet"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i := 0; i < m.data.Len(); i++ {
		label := truncate(m.data.Labels[i], chartLabelWidth)
		line := fmt.Sprintf("%-*s %s %*s",
			chartLabelWidth, label,
			m.bar.ViewAs(m.data.Fraction(i)),
			chartValueWidth, m.valueLabel(i),
		)
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ChartModel) valueLabel(i int) string {
	v := m.data.Values[i]
	switch m.data.Kind {
	case viewmodel.ChartCount:
		return fmt.Sprintf("%.0f", v)
	case viewmodel.ChartShare:
		return fmt.Sprintf("%.0f%%", m.data.Fraction(i)*100)
	default:
		return fmt.Sprintf("%.1f%%", v)
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return strings.TrimSpace(string(r[:width-1])) + "…"
}

// Package cli provides styled terminal output for the non-interactive
// commands.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/risk"
	"github.com/payarise/payarise/internal/tui/viewmodel"
)

var (
	// PrimaryColor is the main brand color.
	PrimaryColor = lipgloss.Color("#5B5BD6")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#2FB67C") // Green
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F5A524") // Amber
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#E5484D") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#3E9BF5")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	PayIcon     = "₹"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the rupee icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(PayIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}

// bandStyle colors a probability by its risk band.
func bandStyle(p float64) lipgloss.Style {
	switch risk.BandOf(p) {
	case risk.BandLow:
		return ErrorStyle
	case risk.BandModerate:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// FormatPrediction renders a /predict reply the way the dashboard result
// card does: percentage, upper-cased status and reason.
func FormatPrediction(resp model.PredictResponse) string {
	if resp.SuccessProb == nil {
		return FormatWarning("no success probability returned")
	}
	p := *resp.SuccessProb
	percent := bandStyle(p).Bold(true).Render(strconv.FormatFloat(p, 'f', -1, 64) + "%")

	parts := []string{percent}
	if resp.Status != "" {
		parts = append(parts, BoldStyle.Render(strings.ToUpper(resp.Status)))
	}
	if resp.Reason != "" {
		parts = append(parts, resp.Reason)
	}
	return strings.Join(parts, "  ")
}

// FormatPayload summarizes a prediction request on one line.
func FormatPayload(p model.PredictionPayload) string {
	return SubtleStyle.Render(fmt.Sprintf("%s via %s, ₹%s, %s network, %s, %d retries, %d past failures",
		p.Bank, p.Method, strconv.FormatFloat(p.Amount, 'f', -1, 64),
		p.Network, p.TimeOfDay, p.Retries, p.PastFailures))
}

// RenderStats renders the overview figures and the three aggregates as
// plain tables.
func RenderStats(stats model.Stats) string {
	ov := viewmodel.NewOverview(stats)
	summary := fmt.Sprintf("Avg Success: %s   Banks Reported: %d   High-risk Reasons: %d",
		BoldStyle.Render(ov.AvgLabel()), ov.BanksReported, ov.HighRisk)

	sections := []string{summary}
	for _, chart := range []viewmodel.ChartView{
		viewmodel.BankChart(stats),
		viewmodel.MethodChart(stats),
		viewmodel.ReasonChart(stats),
	} {
		sections = append(sections, "", renderTable(chart))
	}
	return RenderBox(ChartIcon+" PayArise Stats", strings.Join(sections, "\n"))
}

func renderTable(chart viewmodel.ChartView) string {
	lines := []string{TableHeaderStyle.Render(chart.Title)}
	if chart.IsEmpty() {
		return strings.Join(append(lines, SubtleStyle.Render("No data yet")), "\n")
	}

	width := 0
	for _, l := range chart.Labels {
		width = max(width, lipgloss.Width(l))
	}
	for i := 0; i < chart.Len(); i++ {
		var value string
		switch chart.Kind {
		case viewmodel.ChartCount:
			value = fmt.Sprintf("%.0f", chart.Values[i])
		default:
			value = bandStyle(chart.Values[i]).Render(fmt.Sprintf("%.2f%%", chart.Values[i]))
		}
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, chart.Labels[i], value))
	}
	return strings.Join(lines, "\n")
}

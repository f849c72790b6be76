package dashboard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.theme.Title.Render("PayArise Dashboard")
	if m.loading {
		header += "  " + m.spinnerView() + m.theme.StatusPending.Render("Refreshing…")
	}

	sections := []string{header, m.overview.View()}
	if m.statsErr != nil {
		sections = append(sections, m.theme.StatusError.Render("Stats unavailable: "+common.UserMessage(m.statsErr)))
	}

	if m.chartsReady {
		for _, c := range m.charts {
			sections = append(sections, "", c.View())
		}
	}

	sections = append(sections, "", m.form.View(m.theme))
	if m.submitting {
		sections = append(sections, m.spinnerView()+m.theme.StatusPending.Render("Predicting…"))
	}
	if m.result != nil {
		sections = append(sections, "", m.renderResult(*m.result))
	}
	if m.submitErr != nil {
		sections = append(sections, m.theme.StatusError.Render("Error: "+common.UserMessage(m.submitErr)))
	}
	if m.config.ShowHelp {
		sections = append(sections, "", m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderResult shows the backend's own figures, unadjusted.
func (m Model) renderResult(resp model.PredictResponse) string {
	style := m.theme.StatusPending
	if resp.SuccessProb != nil {
		style = m.theme.Band(int(*resp.SuccessProb))
	}
	return m.theme.Card.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		style.Bold(true).Render(percentLabel(resp.SuccessProb)),
		m.theme.Bold.Render(strings.ToUpper(resp.Status)),
		m.theme.Normal.Render(resp.Reason),
	))
}

func percentLabel(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64) + "%"
}

func (m Model) spinnerView() string {
	if !m.config.EnableAnimations {
		return ""
	}
	return m.spinner.View() + " "
}

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/tui/themes"
)

// PredictionCardModel shows the success probability for the entered amount.
type PredictionCardModel struct {
	theme      themes.Theme
	prediction *model.Prediction
	width      int
	loading    bool
}

// NewPredictionCardModel creates an empty prediction card.
func NewPredictionCardModel(theme themes.Theme) PredictionCardModel {
	return PredictionCardModel{theme: theme, width: 36}
}

// SetPrediction replaces the displayed prediction.
func (m *PredictionCardModel) SetPrediction(p *model.Prediction) {
	m.prediction = p
}

// SetLoading marks a prediction as in flight.
func (m *PredictionCardModel) SetLoading(loading bool) {
	m.loading = loading
}

// Resize updates the card width.
func (m *PredictionCardModel) Resize(width int) {
	if width > 0 {
		m.width = width
	}
}

// View renders the card.
func (m PredictionCardModel) View() string {
	if m.prediction == nil {
		if m.loading {
			return m.theme.StatusPending.Render("Checking success chance…")
		}
		return ""
	}
	p := m.prediction

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Band(p.SuccessProb).Render(fmt.Sprintf("%d%%", p.SuccessProb)),
		m.theme.Normal.Render(p.Reason),
	)
	return m.theme.Card.Width(m.width).Render(body)
}

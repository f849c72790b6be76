package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/tui/themes"
)

// ReceiverCardModel shows the resolved payee.
type ReceiverCardModel struct {
	theme    themes.Theme
	receiver *model.Receiver
	width    int
}

// NewReceiverCardModel creates an empty receiver card.
func NewReceiverCardModel(theme themes.Theme) ReceiverCardModel {
	return ReceiverCardModel{theme: theme, width: 36}
}

// SetReceiver replaces the displayed receiver. Nil hides the card.
func (m *ReceiverCardModel) SetReceiver(r *model.Receiver) {
	m.receiver = r
}

// Visible reports whether the card has anything to show.
func (m ReceiverCardModel) Visible() bool {
	return m.receiver != nil
}

// Resize updates the card width.
func (m *ReceiverCardModel) Resize(width int) {
	if width > 0 {
		m.width = width
	}
}

// View renders the card, or nothing while no receiver is set.
func (m ReceiverCardModel) View() string {
	if m.receiver == nil {
		return ""
	}
	r := m.receiver

	name := r.Name
	if name == "" {
		name = "—"
	}
	bank := r.Bank
	if bank == "" {
		bank = "—"
	}

	details := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Render(name),
		m.theme.Subtitle.Render(bank),
		m.theme.Faint.Render(r.Identifier()),
	)

	body := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.theme.Avatar.Render(r.Initials()),
		"  ",
		details,
	)
	return m.theme.Card.Width(m.width).Render(body)
}

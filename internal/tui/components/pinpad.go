package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/tui/themes"
)

var keypadRows = [][]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{"⌫", "0", "OK"},
}

// PinPadModel renders the PIN dots and keypad.
type PinPadModel struct {
	theme  themes.Theme
	length int
	filled int
}

// NewPinPadModel creates a keypad for a PIN of the given length.
func NewPinPadModel(theme themes.Theme, length int) PinPadModel {
	return PinPadModel{theme: theme, length: length}
}

// SetFilled sets how many digits have been entered.
func (m *PinPadModel) SetFilled(n int) {
	m.filled = max(0, min(n, m.length))
}

// Filled returns the number of entered digits.
func (m PinPadModel) Filled() int {
	return m.filled
}

// View renders the pad. OK is drawn disabled until every digit is in.
func (m PinPadModel) View() string {
	dots := make([]string, m.length)
	for i := range dots {
		if i < m.filled {
			dots[i] = m.theme.PinFilled.Render("●")
		} else {
			dots[i] = m.theme.PinEmpty.Render("○")
		}
	}

	rows := make([]string, 0, len(keypadRows))
	for _, row := range keypadRows {
		cells := make([]string, len(row))
		for i, k := range row {
			style := m.theme.Key
			if k == "OK" && m.filled < m.length {
				style = style.Foreground(m.theme.Muted)
			}
			cells[i] = style.Render(k)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		strings.Join(dots, " "),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/flow"
	"github.com/payarise/payarise/internal/model"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderTopBar()}
	if m.state.MenuOpen {
		sections = append(sections, m.renderMenu())
	}
	sections = append(sections, m.renderScreen())
	if m.state.Notice != "" {
		sections = append(sections, "", m.theme.StatusWarning.Render(m.state.Notice))
	}
	if m.lastError != nil {
		sections = append(sections, m.theme.StatusError.Render("Log failed: "+common.UserMessage(m.lastError)))
	}
	if m.config.ShowHelp {
		sections = append(sections, "", m.help.ShortHelpView(m.screenBindings()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTopBar() string {
	left := "PayArise"
	if m.state.BackVisible() {
		left = "‹ " + m.state.Screen.String()
	} else if m.state.Screen != flow.ScreenLogin {
		left = m.state.Screen.String()
	}

	var right []string
	if m.state.Session != nil {
		right = append(right, m.state.Session.Username)
	}
	if m.state.MenuVisible() {
		right = append(right, "⋮")
	}
	rightText := strings.Join(right, "  ")

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(rightText))
	return m.theme.TopBar.Render(left + strings.Repeat(" ", gap) + rightText)
}

func (m Model) renderMenu() string {
	return m.theme.Card.Render(m.theme.Bold.Render("Logout") + m.theme.Faint.Render("  (l)"))
}

func (m Model) renderScreen() string {
	switch m.state.Screen {
	case flow.ScreenLogin:
		return m.renderLogin()
	case flow.ScreenTypeSelect:
		return m.renderTypeSelect()
	case flow.ScreenDetails:
		return m.renderDetails()
	case flow.ScreenAmount:
		return m.renderAmount()
	case flow.ScreenPin:
		return m.renderPin()
	case flow.ScreenProcessing:
		return m.renderProcessing()
	case flow.ScreenResult:
		return m.renderResult()
	}
	return ""
}

func (m Model) renderLogin() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Welcome to PayArise"),
		m.theme.Subtitle.Render("Username"),
		m.loginInputs[loginUser].View(),
		m.theme.Subtitle.Render("Password"),
		m.loginInputs[loginPass].View(),
		"",
		m.theme.Button.Render("Login"),
	)
}

func (m Model) renderTypeSelect() string {
	lines := []string{m.theme.Title.Render("Send Money")}
	for i, method := range model.Methods {
		label := fmt.Sprintf("%d  %s", i+1, method.Label())
		if i == m.typeCursor {
			lines = append(lines, m.theme.Selected.Render("▸ "+label))
		} else {
			lines = append(lines, m.theme.Normal.Render("  "+label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDetails() string {
	lines := []string{m.theme.Title.Render(m.state.Method.Label())}

	switch m.state.Method {
	case model.MethodMobile:
		lines = append(lines, m.theme.Subtitle.Render("Mobile number"), m.detailInputs[flow.FieldMobile].View())
	case model.MethodUPI:
		lines = append(lines, m.theme.Subtitle.Render("UPI ID"), m.detailInputs[flow.FieldUPI].View())
	case model.MethodBank:
		lines = append(lines,
			m.theme.Subtitle.Render("Account number"), m.detailInputs[flow.FieldAccount].View(),
			m.theme.Subtitle.Render("IFSC"), m.detailInputs[flow.FieldIFSC].View(),
		)
	}

	lines = append(lines, "")
	switch {
	case m.state.Resolving:
		lines = append(lines, m.spinnerView()+m.theme.StatusPending.Render("Fetching receiver…"))
	case m.receiverCard.Visible():
		lines = append(lines, m.receiverCard.View())
	}

	lines = append(lines, "", m.button("Continue", m.state.CanContinue()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderAmount() string {
	lines := []string{
		m.theme.Title.Render("Enter Amount"),
		m.receiverCard.View(),
		"",
		m.amountInput.View(),
		"",
	}

	if card := m.predictionCard.View(); card != "" {
		if m.state.Predicting {
			card = m.spinnerView() + card
		}
		lines = append(lines, card)
	}
	if m.state.DevPanel {
		lines = append(lines, m.renderDevPanel())
	}

	lines = append(lines, "", m.button("Pay Now", m.state.CanPay()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDevPanel() string {
	mode := "natural"
	if m.state.ForceMode != model.ForceNone {
		mode = string(m.state.ForceMode)
	}
	return m.theme.Card.BorderForeground(m.theme.Warning).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.StatusWarning.Render("Developer"),
		"F1 success  F2 moderate  F3 fail",
		m.theme.Faint.Render("mode: "+mode),
	))
}

func (m Model) renderPin() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Enter UPI PIN"),
		m.theme.Subtitle.Render(fmt.Sprintf("Paying ₹%s to %s", strings.TrimSpace(m.state.Amount), m.state.ReceiverName())),
		"",
		m.pinPad.View(),
	)
}

func (m Model) renderProcessing() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Processing"),
		m.spinnerView()+m.theme.StatusPending.Render("Contacting your bank…"),
	)
}

func (m Model) renderResult() string {
	out := m.state.Outcome
	if out == nil {
		return ""
	}
	style := m.theme.StatusError
	if out.Succeeded() {
		style = m.theme.StatusSuccess
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		style.Render(out.Title),
		m.theme.Normal.Render(out.Message),
		"",
		m.button("Done", true),
	)
}

func (m Model) button(label string, enabled bool) string {
	if enabled {
		return m.theme.Button.Render(label)
	}
	return m.theme.ButtonDisabled.Render(label)
}

func (m Model) spinnerView() string {
	if !m.config.EnableAnimations {
		return ""
	}
	return m.spinner.View() + " "
}

// screenBindings returns the key hints for the current screen.
func (m Model) screenBindings() []key.Binding {
	k := m.keymap
	if m.state.MenuOpen {
		return []key.Binding{k.Logout, k.ForceQuit}
	}

	var b []key.Binding
	switch m.state.Screen {
	case flow.ScreenLogin:
		b = []key.Binding{k.NextField, k.Submit}
	case flow.ScreenTypeSelect:
		b = []key.Binding{k.PickMobile, k.PickUPI, k.PickBank, k.Up, k.Down}
	case flow.ScreenDetails:
		b = []key.Binding{k.Submit}
		if m.state.Method == model.MethodBank {
			b = append(b, k.NextField)
		}
	case flow.ScreenAmount:
		b = []key.Binding{k.Submit, k.Tap}
		if m.state.DevPanel {
			b = append(b, k.ForceSuccess, k.ForceModerate, k.ForceFail)
		}
	case flow.ScreenPin:
		b = []key.Binding{k.Backspace, k.Submit}
	case flow.ScreenResult:
		b = []key.Binding{k.Submit}
	}
	if m.state.BackVisible() {
		b = append(b, k.Back)
	}
	if m.state.MenuVisible() {
		b = append(b, k.Menu)
	}
	return append(b, k.ForceQuit)
}

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts of the mobile flow.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Back      key.Binding

	// Actions
	Submit     key.Binding
	PickMobile key.Binding
	PickUPI    key.Binding
	PickBank   key.Binding
	Tap        key.Binding
	Backspace  key.Binding

	// Developer panel
	ForceSuccess  key.Binding
	ForceModerate key.Binding
	ForceFail     key.Binding

	// Session
	Menu   key.Binding
	Logout key.Binding

	// Application
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "continue"),
		),
		PickMobile: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "mobile"),
		),
		PickUPI: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "UPI"),
		),
		PickBank: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "bank"),
		),
		Tap: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "tap prediction"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),

		ForceSuccess: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "force success"),
		),
		ForceModerate: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "force moderate"),
		),
		ForceFail: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "force fail"),
		),

		Menu: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+O", "menu"),
		),
		Logout: key.NewBinding(
			key.WithKeys("l", "enter"),
			key.WithHelp("l", "logout"),
		),

		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

package themes

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/risk"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Normal         lipgloss.Style
	Bold           lipgloss.Style
	Faint          lipgloss.Style
	Selected       lipgloss.Style
	Card           lipgloss.Style
	Panel          lipgloss.Style
	Avatar         lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	TopBar         lipgloss.Style
	PinFilled      lipgloss.Style
	PinEmpty       lipgloss.Style
	Key            lipgloss.Style
	BarFill        lipgloss.Style
	BarEmpty       lipgloss.Style
	StatusSuccess  lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusError    lipgloss.Style
	StatusInfo     lipgloss.Style
	StatusPending  lipgloss.Style
	Primary        lipgloss.Color
	Secondary      lipgloss.Color
	Muted          lipgloss.Color
	Border         lipgloss.Color
	Foreground     lipgloss.Color
	Success        lipgloss.Color
	Warning        lipgloss.Color
	Error          lipgloss.Color
	Info           lipgloss.Color
}

type palette struct {
	primary, secondary, muted, border, fg, subtle, surface lipgloss.Color
	success, warning, errc, info                           lipgloss.Color
}

func build(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Muted:      p.muted,
		Border:     p.border,
		Foreground: p.fg,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errc,
		Info:       p.info,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.fg),
		Faint: lipgloss.NewStyle().
			Foreground(p.muted),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.fg).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		Avatar: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.fg).
			Bold(true).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.fg).
			Bold(true).
			Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Background(p.surface).
			Foreground(p.muted).
			Padding(0, 2),
		TopBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.border),
		PinFilled: lipgloss.NewStyle().
			Foreground(p.primary),
		PinEmpty: lipgloss.NewStyle().
			Foreground(p.border),
		Key: lipgloss.NewStyle().
			Foreground(p.fg).
			Width(5).
			Align(lipgloss.Center),
		BarFill: lipgloss.NewStyle().
			Foreground(p.primary),
		BarEmpty: lipgloss.NewStyle().
			Foreground(p.border),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errc).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:   lipgloss.Color("#7c3aed"),
	secondary: lipgloss.Color("#a78bfa"),
	muted:     lipgloss.Color("#737373"),
	border:    lipgloss.Color("#404040"),
	fg:        lipgloss.Color("#fafafa"),
	subtle:    lipgloss.Color("#a3a3a3"),
	surface:   lipgloss.Color("#262626"),
	success:   lipgloss.Color("#10b981"),
	warning:   lipgloss.Color("#f59e0b"),
	errc:      lipgloss.Color("#ef4444"),
	info:      lipgloss.Color("#3b82f6"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:   lipgloss.Color("#cba6f7"),
	secondary: lipgloss.Color("#f5c2e7"),
	muted:     lipgloss.Color("#6c7086"),
	border:    lipgloss.Color("#45475a"),
	fg:        lipgloss.Color("#cdd6f4"),
	subtle:    lipgloss.Color("#a6adc8"),
	surface:   lipgloss.Color("#313244"),
	success:   lipgloss.Color("#a6e3a1"),
	warning:   lipgloss.Color("#f9e2af"),
	errc:      lipgloss.Color("#f38ba8"),
	info:      lipgloss.Color("#89dceb"),
})

// Names lists the selectable theme names.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Band returns the status style for a success probability.
func (t Theme) Band(p int) lipgloss.Style {
	switch risk.BandOf(float64(p)) {
	case risk.BandLow:
		return t.StatusError
	case risk.BandModerate:
		return t.StatusWarning
	default:
		return t.StatusSuccess
	}
}

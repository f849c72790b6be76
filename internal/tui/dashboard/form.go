package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/tui/themes"
)

// Form field order, top to bottom.
const (
	fieldMethod = iota
	fieldBank
	fieldAmount
	fieldNetwork
	fieldTime
	fieldRetries
	fieldFailures
	fieldCount
)

// Choices offered by the select fields. The backend scores any string, so
// these are only the values it knows about.
var (
	MethodChoices  = []string{"UPI", "Card", "Wallet"}
	BankChoices    = []string{"SBI", "HDFC", "ICICI", "AXIS", "KOTAK", "IDFC", "BOB", "PNB", "CANARA", "YESBANK"}
	NetworkChoices = []string{"Fast", "Average", "Slow"}
	TimeChoices    = []string{"Morning", "Afternoon", "Evening", "Night", "Late Night"}
)

type formField struct {
	label   string
	options []string
	input   textinput.Model
	choice  int
}

func (f formField) isChoice() bool {
	return len(f.options) > 0
}

func (f formField) value() string {
	if f.isChoice() {
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

// Form is the manual prediction form.
type Form struct {
	fields [fieldCount]formField
	focus  int
}

func newForm(animations bool) Form {
	number := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Width = 16
		ti.Prompt = ""
		if !animations {
			ti.Cursor.SetMode(cursor.CursorStatic)
		}
		return ti
	}

	var f Form
	f.fields[fieldMethod] = formField{label: "Method", options: MethodChoices}
	f.fields[fieldBank] = formField{label: "Bank", options: BankChoices}
	f.fields[fieldAmount] = formField{label: "Amount", input: number("e.g. 2500", 12)}
	f.fields[fieldNetwork] = formField{label: "Network", options: NetworkChoices}
	f.fields[fieldTime] = formField{label: "Time of day", options: TimeChoices}
	f.fields[fieldRetries] = formField{label: "Retries", input: number("0", 3)}
	f.fields[fieldFailures] = formField{label: "Past failures", input: number("0", 3)}

	f.fields[fieldBank].choice = indexOf(BankChoices, model.DefaultBank)
	f.fields[fieldNetwork].choice = indexOf(NetworkChoices, model.DefaultNetwork)
	f.fields[fieldTime].choice = indexOf(TimeChoices, model.DefaultTimeOfDay)
	return f
}

func numeric(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

// Focused returns the index of the focused field.
func (f Form) Focused() int {
	return f.focus
}

// Move shifts focus by delta, wrapping around.
func (f *Form) Move(delta int) {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	if !f.fields[f.focus].isChoice() {
		f.fields[f.focus].input.Focus()
	}
}

// Cycle steps the focused select field through its options. It reports
// false when the focused field is not a select.
func (f *Form) Cycle(delta int) bool {
	field := &f.fields[f.focus]
	if !field.isChoice() {
		return false
	}
	n := len(field.options)
	field.choice = (field.choice + delta + n) % n
	return true
}

// Set fills a field by index. Select fields accept one of their options,
// case-insensitively.
func (f *Form) Set(index int, value string) error {
	if index < 0 || index >= fieldCount {
		return fmt.Errorf("no form field %d", index)
	}
	field := &f.fields[index]
	if !field.isChoice() {
		field.input.SetValue(value)
		return nil
	}
	for i, o := range field.options {
		if strings.EqualFold(o, value) {
			field.choice = i
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", field.label, strings.Join(field.options, ", "))
}

// Update forwards msg to the focused text input. Typed characters other
// than digits and the decimal point are dropped.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	field := &f.fields[f.focus]
	if field.isChoice() {
		return f, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes && !numeric(k.Runes) {
		return f, nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return f, cmd
}

// Payload reads the form into a prediction request. Amount is required;
// empty retries and past failures count as zero.
func (f Form) Payload() (model.PredictionPayload, error) {
	amountText := f.fields[fieldAmount].value()
	if amountText == "" {
		return model.PredictionPayload{}, fmt.Errorf("%w: amount is required", common.ErrInvalidPayload)
	}
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return model.PredictionPayload{}, fmt.Errorf("%w: amount %q must be a positive number", common.ErrInvalidPayload, amountText)
	}

	retries, err := count(f.fields[fieldRetries])
	if err != nil {
		return model.PredictionPayload{}, err
	}
	failures, err := count(f.fields[fieldFailures])
	if err != nil {
		return model.PredictionPayload{}, err
	}

	return model.PredictionPayload{
		Method:       f.fields[fieldMethod].value(),
		Bank:         f.fields[fieldBank].value(),
		Amount:       amount,
		Network:      f.fields[fieldNetwork].value(),
		TimeOfDay:    f.fields[fieldTime].value(),
		Retries:      retries,
		PastFailures: failures,
	}, nil
}

func count(field formField) (int, error) {
	text := field.value()
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s %q must be a whole number", common.ErrInvalidPayload, strings.ToLower(field.label), text)
	}
	return n, nil
}

// View renders the form.
func (f Form) View(theme themes.Theme) string {
	lines := []string{theme.Subtitle.Bold(true).Render("Manual Prediction")}
	for i, field := range f.fields {
		label := fmt.Sprintf("%-14s", field.label)
		var value string
		if field.isChoice() {
			value = "‹ " + field.value() + " ›"
		} else {
			value = field.input.View()
		}

		line := label + value
		if i == f.focus {
			line = theme.Selected.Render("▸ " + line)
		} else {
			line = theme.Normal.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

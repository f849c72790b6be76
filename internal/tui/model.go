package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/payarise/payarise/internal/flow"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/tui/components"
	"github.com/payarise/payarise/internal/tui/themes"
)

// Login form fields.
const (
	loginUser = iota
	loginPass
)

// Model holds the mobile flow TUI state.
type Model struct {
	theme          themes.Theme
	lastError      error
	keymap         KeyMap
	config         Config
	help           help.Model
	spinner        spinner.Model
	loginInputs    [2]textinput.Model
	detailInputs   [4]textinput.Model
	amountInput    textinput.Model
	receiverCard   components.ReceiverCardModel
	predictionCard components.PredictionCardModel
	pinPad         components.PinPadModel
	state          flow.State
	debounce       flow.Debouncer
	loginFocus     int
	detailFocus    flow.Field
	typeCursor     int
	width          int
	height         int
	quitting       bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		theme:          cfg.Theme,
		config:         cfg,
		keymap:         DefaultKeyMap(),
		help:           help.New(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		state:          flow.New(cfg.TapWindow),
		receiverCard:   components.NewReceiverCardModel(cfg.Theme),
		predictionCard: components.NewPredictionCardModel(cfg.Theme),
		pinPad:         components.NewPinPadModel(cfg.Theme, flow.PinLength),
		width:          cfg.Width,
		height:         cfg.Height,
	}
	m.spinner.Style = cfg.Theme.StatusInfo

	user := m.newInput("Username", 32)
	pass := m.newInput("Password", 32)
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	m.loginInputs = [2]textinput.Model{user, pass}

	m.detailInputs[flow.FieldMobile] = m.newInput("10-digit mobile number", 10)
	m.detailInputs[flow.FieldUPI] = m.newInput("name@bank", 64)
	m.detailInputs[flow.FieldAccount] = m.newInput("Account number", 20)
	m.detailInputs[flow.FieldIFSC] = m.newInput("IFSC", 11)
	m.amountInput = m.newInput("Amount in ₹", 12)

	m.typeCursor = m.defaultCursor()
	m.focusLogin(loginUser)
	m.resize()
	return m
}

// defaultCursor is the card index of the configured default method.
func (m Model) defaultCursor() int {
	for i, method := range model.Methods {
		if method == m.config.DefaultMethod {
			return i
		}
	}
	return 0
}

func (m Model) newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	ti.Prompt = "› "
	if !m.config.EnableAnimations {
		ti.Cursor.SetMode(cursor.CursorStatic)
	}
	return ti
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if !m.config.EnableAnimations {
		return nil
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// State returns the current flow state.
func (m Model) State() flow.State {
	return m.state
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case debounceMsg:
		if !m.debounce.Fire(msg.concern, msg.gen) {
			return m, nil
		}
		switch msg.concern {
		case flow.ConcernLookup:
			return m.apply(flow.LookupDue{})
		case flow.ConcernAmount:
			return m.apply(flow.AmountDue{})
		}
		return m, nil

	case flowMsg:
		return m.apply(msg.event)

	case outcomeLoggedMsg:
		m.lastError = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.config.EnableAnimations {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocusedInput(msg)
}

// apply runs ev through the state machine and turns its effects into
// commands.
func (m Model) apply(ev flow.Event) (Model, tea.Cmd) {
	prev := m.state
	next, effects := flow.Apply(m.state, ev)
	m.state = next

	if prev.Screen != next.Screen {
		m.enterScreen(next.Screen)
	}
	m.sync()

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.run(eff))
	}
	return m, tea.Batch(cmds...)
}

// sync copies flow state into the input and display components.
func (m *Model) sync() {
	fields := [4]string{
		flow.FieldMobile:  m.state.Fields.Mobile,
		flow.FieldUPI:     m.state.Fields.UPI,
		flow.FieldAccount: m.state.Fields.Account,
		flow.FieldIFSC:    m.state.Fields.IFSC,
	}
	for f, v := range fields {
		if m.detailInputs[f].Value() != v {
			m.detailInputs[f].SetValue(v)
		}
	}
	if m.amountInput.Value() != m.state.Amount {
		m.amountInput.SetValue(m.state.Amount)
	}

	m.receiverCard.SetReceiver(m.state.Receiver)
	m.predictionCard.SetPrediction(m.state.Prediction)
	m.predictionCard.SetLoading(m.state.Predicting)
	m.pinPad.SetFilled(len(m.state.Pin))
}

// enterScreen moves keyboard focus to the inputs of screen.
func (m *Model) enterScreen(screen flow.Screen) {
	m.blurAll()
	switch screen {
	case flow.ScreenLogin:
		m.loginInputs[loginPass].SetValue("")
		m.focusLogin(loginUser)
	case flow.ScreenTypeSelect:
		m.loginInputs[loginPass].SetValue("")
		m.typeCursor = m.defaultCursor()
	case flow.ScreenDetails:
		m.detailFocus = firstField(m.state.Method)
		m.focusDetail(m.detailFocus)
	case flow.ScreenAmount:
		m.amountInput.Focus()
	}
}

func firstField(method model.Method) flow.Field {
	switch method {
	case model.MethodUPI:
		return flow.FieldUPI
	case model.MethodBank:
		return flow.FieldAccount
	default:
		return flow.FieldMobile
	}
}

func (m *Model) blurAll() {
	for i := range m.loginInputs {
		m.loginInputs[i].Blur()
	}
	for f := range m.detailInputs {
		m.detailInputs[f].Blur()
	}
	m.amountInput.Blur()
}

func (m *Model) focusLogin(i int) {
	for j := range m.loginInputs {
		if j == i {
			m.loginInputs[j].Focus()
		} else {
			m.loginInputs[j].Blur()
		}
	}
	m.loginFocus = i
}

func (m *Model) focusDetail(f flow.Field) {
	for field := range m.detailInputs {
		if flow.Field(field) == f {
			m.detailInputs[field].Focus()
		} else {
			m.detailInputs[field].Blur()
		}
	}
	m.detailFocus = f
}

func (m *Model) resize() {
	cardWidth := min(max(m.width-6, 24), 48)
	m.receiverCard.Resize(cardWidth)
	m.predictionCard.Resize(cardWidth)
	m.help.Width = m.width
}

// handleKey routes a key press. Global keys come first, then the open menu,
// then the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	if m.state.Notice != "" {
		var cmd tea.Cmd
		m, cmd = m.apply(flow.ClearNotice{})
		cmds = append(cmds, cmd)
	}

	if m.state.MenuOpen {
		if key.Matches(msg, m.keymap.Logout) {
			var cmd tea.Cmd
			m, cmd = m.apply(flow.Logout{})
			return m, tea.Batch(append(cmds, cmd)...)
		}
		var cmd tea.Cmd
		m, cmd = m.apply(flow.DismissMenu{})
		cmds = append(cmds, cmd)
		if key.Matches(msg, m.keymap.Menu) {
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keymap.Menu):
		m, cmd = m.apply(flow.ToggleMenu{})
	case key.Matches(msg, m.keymap.Back):
		m, cmd = m.apply(flow.Back{})
	default:
		m, cmd = m.handleScreenKey(msg)
	}
	return m, tea.Batch(append(cmds, cmd)...)
}

func (m Model) handleScreenKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state.Screen {
	case flow.ScreenLogin:
		return m.handleLoginKey(msg)
	case flow.ScreenTypeSelect:
		return m.handleTypeKey(msg)
	case flow.ScreenDetails:
		return m.handleDetailsKey(msg)
	case flow.ScreenAmount:
		return m.handleAmountKey(msg)
	case flow.ScreenPin:
		return m.handlePinKey(msg)
	case flow.ScreenResult:
		if key.Matches(msg, m.keymap.Submit) {
			return m.apply(flow.Done{})
		}
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.NextField), key.Matches(msg, m.keymap.PrevField):
		m.focusLogin(1 - m.loginFocus)
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		if m.loginFocus == loginUser && m.loginInputs[loginPass].Value() == "" {
			m.focusLogin(loginPass)
			return m, nil
		}
		return m.apply(flow.Login{
			Username: m.loginInputs[loginUser].Value(),
			Password: m.loginInputs[loginPass].Value(),
		})
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) handleTypeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.PickMobile):
		return m.apply(flow.SelectMethod{Method: model.MethodMobile})
	case key.Matches(msg, m.keymap.PickUPI):
		return m.apply(flow.SelectMethod{Method: model.MethodUPI})
	case key.Matches(msg, m.keymap.PickBank):
		return m.apply(flow.SelectMethod{Method: model.MethodBank})
	case key.Matches(msg, m.keymap.Up):
		m.typeCursor = (m.typeCursor + len(model.Methods) - 1) % len(model.Methods)
	case key.Matches(msg, m.keymap.Down):
		m.typeCursor = (m.typeCursor + 1) % len(model.Methods)
	case key.Matches(msg, m.keymap.Submit):
		return m.apply(flow.SelectMethod{Method: model.Methods[m.typeCursor]})
	}
	return m, nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.apply(flow.Continue{})
	case key.Matches(msg, m.keymap.NextField), key.Matches(msg, m.keymap.PrevField):
		if m.state.Method == model.MethodBank {
			next := flow.FieldIFSC
			if m.detailFocus == flow.FieldIFSC {
				next = flow.FieldAccount
			}
			m.focusDetail(next)
		}
		return m, nil
	}

	field := m.detailFocus
	before := m.detailInputs[field].Value()
	var inputCmd tea.Cmd
	m.detailInputs[field], inputCmd = m.detailInputs[field].Update(msg)
	after := m.detailInputs[field].Value()
	if after == before {
		return m, inputCmd
	}

	var cmd tea.Cmd
	m, cmd = m.apply(flow.EditField{Field: field, Value: after})
	return m, tea.Batch(inputCmd, cmd)
}

func (m Model) handleAmountKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.apply(flow.PayNow{})
	case key.Matches(msg, m.keymap.Tap):
		return m.apply(flow.TapPrediction{At: m.config.Clock()})
	case key.Matches(msg, m.keymap.ForceSuccess):
		return m.apply(flow.SetForceMode{Mode: model.ForceSuccess})
	case key.Matches(msg, m.keymap.ForceModerate):
		return m.apply(flow.SetForceMode{Mode: model.ForceModerate})
	case key.Matches(msg, m.keymap.ForceFail):
		return m.apply(flow.SetForceMode{Mode: model.ForceFail})
	}

	before := m.amountInput.Value()
	var inputCmd tea.Cmd
	m.amountInput, inputCmd = m.amountInput.Update(msg)
	if m.amountInput.Value() == before {
		return m, inputCmd
	}

	var cmd tea.Cmd
	m, cmd = m.apply(flow.EditAmount{Value: m.amountInput.Value()})
	return m, tea.Batch(inputCmd, cmd)
}

func (m Model) handlePinKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.apply(flow.PinConfirm{})
	case key.Matches(msg, m.keymap.Backspace):
		return m.apply(flow.PinBackspace{})
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		return m.apply(flow.PinDigit{Digit: msg.Runes[0]})
	}
	return m, nil
}

// updateFocusedInput forwards non-key messages such as cursor blinks to
// the focused input.
func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state.Screen {
	case flow.ScreenLogin:
		m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	case flow.ScreenDetails:
		m.detailInputs[m.detailFocus], cmd = m.detailInputs[m.detailFocus].Update(msg)
	case flow.ScreenAmount:
		m.amountInput, cmd = m.amountInput.Update(msg)
	}
	return m, cmd
}

// Package dashboard implements the analytics dashboard TUI: overview
// figures, three charts over the backend's /stats aggregate and a manual
// prediction form that feeds it.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/tui/components"
	"github.com/payarise/payarise/internal/tui/themes"
	"github.com/payarise/payarise/internal/tui/viewmodel"
)

// Chart slots, in display order.
const (
	chartBank = iota
	chartMethod
	chartReason
	chartCount
)

// Model holds the dashboard state.
type Model struct {
	theme       themes.Theme
	statsErr    error
	submitErr   error
	result      *model.PredictResponse
	keymap      KeyMap
	config      Config
	help        help.Model
	spinner     spinner.Model
	overview    components.OverviewModel
	form        Form
	charts      [chartCount]components.ChartModel
	refreshGen  uint64
	width       int
	height      int
	chartsReady bool
	loading     bool
	submitting  bool
	quitting    bool
}

func newModel(cfg Config) Model {
	m := Model{
		theme:    cfg.Theme,
		config:   cfg,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		overview: components.NewOverviewModel(cfg.Theme),
		form:     newForm(cfg.EnableAnimations),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	// Init fetches the first generation
	m.refreshGen = 1
	m.loading = true
	m.spinner.Style = cfg.Theme.StatusInfo
	m.resize()
	return m
}

// Init loads the first stats.
func (m Model) Init() tea.Cmd {
	cmd := m.fetchStats(m.refreshGen)
	if !m.config.EnableAnimations {
		return cmd
	}
	return tea.Batch(cmd, textinput.Blink, m.spinner.Tick)
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

	case statsMsg:
		if msg.gen != m.refreshGen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.statsErr = msg.err
			return m, nil
		}
		m.statsErr = nil
		m.applyStats(msg.stats)
		return m, nil

	case predictedMsg:
		if msg.err != nil {
			m.submitting = false
			m.submitErr = msg.err
			return m, nil
		}
		resp := msg.resp
		m.result = &resp
		return m, m.logPrediction(msg.payload, resp)

	case loggedMsg:
		m.submitting = false
		if msg.err != nil {
			m.submitErr = msg.err
			return m, nil
		}
		return m.refresh()

	case spinner.TickMsg:
		if !m.config.EnableAnimations {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.Next):
		m.form.Move(1)
		return m, nil
	case key.Matches(msg, m.keymap.Prev):
		m.form.Move(-1)
		return m, nil
	case key.Matches(msg, m.keymap.Left):
		if m.form.Cycle(-1) {
			return m, nil
		}
	case key.Matches(msg, m.keymap.Right):
		if m.form.Cycle(1) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// refresh starts a new stats fetch; responses to older fetches are
// dropped when they arrive.
func (m Model) refresh() (Model, tea.Cmd) {
	m.refreshGen++
	m.loading = true
	return m, m.fetchStats(m.refreshGen)
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	payload, err := m.form.Payload()
	if err != nil {
		m.submitErr = err
		return m, nil
	}
	m.submitErr = nil
	m.submitting = true
	return m, m.predict(payload)
}

// applyStats creates the charts on the first successful fetch and
// replaces their data afterwards.
func (m *Model) applyStats(stats model.Stats) {
	m.overview.SetOverview(viewmodel.NewOverview(stats))

	if !m.chartsReady {
		for i, data := range chartData(stats) {
			m.charts[i] = components.NewChartModel(m.theme, data.Title, data.Kind)
		}
		m.chartsReady = true
		m.resize()
	}
	for i, data := range chartData(stats) {
		m.charts[i].SetData(data)
	}
}

func chartData(stats model.Stats) [chartCount]viewmodel.ChartView {
	return [chartCount]viewmodel.ChartView{
		chartBank:   viewmodel.BankChart(stats),
		chartMethod: viewmodel.MethodChart(stats),
		chartReason: viewmodel.ReasonChart(stats),
	}
}

func (m *Model) resize() {
	width := max(m.width-4, 30)
	m.overview.Resize(width)
	for i := range m.charts {
		m.charts[i].Resize(min(width, 80))
	}
	m.help.Width = m.width
}

func (m Model) fetchStats(gen uint64) tea.Cmd {
	backend := m.config.Backend
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		stats, err := backend.GetStats(ctx)
		if err != nil {
			slog.Warn("Failed to load stats", "error", err)
		}
		return statsMsg{gen: gen, stats: stats, err: err}
	}
}

func (m Model) predict(payload model.PredictionPayload) tea.Cmd {
	backend := m.config.Backend
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := backend.Predict(ctx, payload)
		if err != nil {
			slog.Warn("Manual prediction failed", "bank", payload.Bank, "error", err)
		}
		return predictedMsg{payload: payload, resp: resp, err: err}
	}
}

func (m Model) logPrediction(payload model.PredictionPayload, resp model.PredictResponse) tea.Cmd {
	backend := m.config.Backend
	timeout := m.config.RequestTimeout
	entry := model.NewLogEntry(payload, resp)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := backend.LogTransaction(ctx, entry)
		if err != nil {
			slog.Warn("Failed to log prediction", "error", err)
		}
		return loggedMsg{err: err}
	}
}

// Charts returns the current chart data in display order. It is empty
// until the first stats arrive.
func (m Model) Charts() []viewmodel.ChartView {
	if !m.chartsReady {
		return nil
	}
	views := make([]viewmodel.ChartView, 0, chartCount)
	for _, c := range m.charts {
		views = append(views, c.Data())
	}
	return views
}

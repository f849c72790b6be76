package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/payarise/payarise/internal/flow"
)

// run turns one state machine effect into a command.
func (m *Model) run(eff flow.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case flow.ScheduleLookup:
		return m.schedule(flow.ConcernLookup, m.config.LookupDebounce)
	case flow.CancelLookup:
		m.debounce.Cancel(flow.ConcernLookup)
	case flow.ScheduleAmount:
		return m.schedule(flow.ConcernAmount, m.config.AmountDebounce)
	case flow.CancelAmount:
		m.debounce.Cancel(flow.ConcernAmount)
	case flow.ResolveReceiver:
		return m.resolveReceiver(eff)
	case flow.RequestPrediction:
		return m.requestPrediction(eff)
	case flow.StartProcessing:
		return m.startProcessing(eff)
	case flow.RecordOutcome:
		return m.recordOutcome(eff)
	}
	return nil
}

// schedule restarts the debounce timer for concern.
func (m *Model) schedule(concern flow.Concern, delay time.Duration) tea.Cmd {
	gen := m.debounce.Schedule(concern)
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{concern: concern, gen: gen}
	})
}

// resolveReceiver looks up the payee for a validated request.
func (m Model) resolveReceiver(eff flow.ResolveReceiver) tea.Cmd {
	resolver := m.config.Resolver
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		r, err := resolver.Resolve(ctx, eff.Request)
		if err != nil {
			slog.Warn("Receiver lookup failed",
				"method", eff.Request.Method,
				"error", err)
			return flowMsg{event: flow.ReceiverFailed{Pass: eff.Pass, Request: eff.Request, Err: err}}
		}
		return flowMsg{event: flow.ReceiverResolved{Pass: eff.Pass, Request: eff.Request, Receiver: r}}
	}
}

// requestPrediction asks the prediction client for the entered amount.
func (m Model) requestPrediction(eff flow.RequestPrediction) tea.Cmd {
	predictor := m.config.Predictor
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res := predictor.Predict(ctx, eff.Payload)
		slog.Debug("Prediction ready",
			"amount", eff.Payload.Amount,
			"success_prob", res.Prediction.SuccessProb,
			"source", res.Source.String(),
			"recovered", res.Recovered())
		return flowMsg{event: flow.PredictionReady{Pass: eff.Pass, Amount: eff.Amount, Prediction: res.Prediction}}
	}
}

// startProcessing waits out the processing delay and resolves the outcome.
func (m Model) startProcessing(eff flow.StartProcessing) tea.Cmd {
	outcomes := m.config.Outcomes
	return tea.Tick(m.config.ProcessingDelay, func(time.Time) tea.Msg {
		out := outcomes.Resolve(eff.Payment)
		return flowMsg{event: flow.OutcomeReady{Pass: eff.Pass, Outcome: out}}
	})
}

// recordOutcome posts a finished payment when a transaction logger is set.
func (m Model) recordOutcome(eff flow.RecordOutcome) tea.Cmd {
	logger := m.config.Logger
	if logger == nil {
		return nil
	}
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := logger.LogTransaction(ctx, eff.Entry)
		if err != nil {
			slog.Warn("Failed to log payment outcome", "error", err)
		}
		return outcomeLoggedMsg{err: err}
	}
}

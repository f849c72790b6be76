package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payarise/payarise/internal/backend"
	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/testutil"
	tuitesting "github.com/payarise/payarise/internal/tui/testing"
	"github.com/payarise/payarise/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) (*tuitesting.Driver, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	client, err := backend.NewClient(fb.URL(), time.Second)
	require.NoError(t, err)

	cfg := defaultConfig()
	for _, opt := range []Option{
		WithBackend(client),
		WithAnimations(false),
		WithHelp(false),
		WithSize(100, 60),
	} {
		opt(&cfg)
	}
	require.NoError(t, cfg.validate())
	return tuitesting.NewDriver(newModel(cfg)), fb
}

func current(d *tuitesting.Driver) Model {
	return d.Model.(Model)
}

// enterAmount moves focus from Method to Amount and types it.
func enterAmount(d *tuitesting.Driver, amount string) {
	d.Send(tuitesting.KeyTab(), tuitesting.KeyTab())
	d.Send(tuitesting.Type(amount)...)
}

func TestInit_CreatesChartsFromFirstStats(t *testing.T) {
	d, _ := newTestDriver(t)
	assert.Nil(t, current(d).Charts(), "no charts before the first fetch")

	d.Init()

	m := current(d)
	assert.False(t, m.loading)
	require.Len(t, m.Charts(), chartCount)
	for _, c := range m.charts {
		assert.Equal(t, 1, c.Updates())
	}
	view := d.View()
	assert.Contains(t, view, "Bank-wise Success Rate")
	assert.Contains(t, view, "Method-wise Success")
	assert.Contains(t, view, "Failure Reasons")
	assert.Contains(t, view, "No data yet")
	assert.Contains(t, view, "0.0%")
}

func TestSubmit_PredictsLogsAndRefreshes(t *testing.T) {
	d, fb := newTestDriver(t)
	d.Init()

	enterAmount(d, "2500")
	d.Send(tuitesting.KeyEnter())

	view := d.View()
	assert.Contains(t, view, "80%")
	assert.Contains(t, view, "LOW-RISK")
	assert.Contains(t, view, "High chance of success")
	assert.Contains(t, view, "80.0%", "overview refreshed after logging")

	logged := fb.Logged()
	require.Len(t, logged, 1)
	assert.Equal(t, "UPI", logged[0].Method)
	assert.Equal(t, model.DefaultBank, logged[0].Bank)
	assert.Equal(t, model.DefaultNetwork, logged[0].Network)
	assert.Equal(t, model.DefaultTimeOfDay, logged[0].TimeOfDay)
	assert.InDelta(t, 2500, logged[0].Amount, 0.001)
	assert.InDelta(t, 80, logged[0].SuccessProb, 0.001)
	assert.Equal(t, "low-risk", logged[0].Status)
	assert.Equal(t, "High chance of success", logged[0].Reason)

	m := current(d)
	assert.False(t, m.submitting)
	assert.NoError(t, m.submitErr)
	bank := m.charts[chartBank]
	assert.Equal(t, 2, bank.Updates(), "charts are updated in place, not recreated")
	assert.Equal(t, "Bank-wise Success Rate", bank.Data().Title)
	assert.Equal(t, []string{"SBI"}, bank.Data().Labels)
	assert.Equal(t, []float64{80}, bank.Data().Values)
}

func TestSubmit_UsesSelectedChoices(t *testing.T) {
	d, fb := newTestDriver(t)
	fb.PredictFunc = func(model.PredictionPayload) model.PredictResponse {
		prob := 42.5
		return model.PredictResponse{SuccessProb: &prob, Status: "medium-risk", Reason: "Moderate chance; could fail during load"}
	}
	d.Init()

	d.Send(tuitesting.KeyRight())                         // Method: Card
	d.Send(tuitesting.KeyTab(), tuitesting.KeyLeft())     // Bank: YESBANK
	d.Send(tuitesting.KeyTab())                           // Amount
	d.Send(tuitesting.Type("12a00")...)                   // letters are dropped
	d.Send(tuitesting.KeyTab(), tuitesting.KeyRight())    // Network: Slow
	d.Send(tuitesting.KeyTab(), tuitesting.KeyRight())    // Time: Night
	d.Send(tuitesting.KeyTab(), tuitesting.KeyPress("2")) // Retries
	d.Send(tuitesting.KeyTab(), tuitesting.KeyPress("4")) // Past failures
	d.Send(tuitesting.KeyEnter())

	logged := fb.Logged()
	require.Len(t, logged, 1)
	assert.Equal(t, model.PredictionPayload{
		Method:       "Card",
		Bank:         "YESBANK",
		Amount:       1200,
		Network:      "Slow",
		TimeOfDay:    "Night",
		Retries:      2,
		PastFailures: 4,
	}, logged[0].PredictionPayload)

	view := d.View()
	assert.Contains(t, view, "42.5%")
	assert.Contains(t, view, "MEDIUM-RISK")

	m := current(d)
	reasons := m.charts[chartReason].Data()
	assert.Equal(t, []string{"Moderate chance; could fail during load"}, reasons.Labels)
	assert.Equal(t, []float64{1}, reasons.Values)
	assert.Contains(t, view, "High-risk Reasons")
}

func TestSubmit_RequiresAmount(t *testing.T) {
	d, fb := newTestDriver(t)
	d.Init()

	d.Send(tuitesting.KeyEnter())

	m := current(d)
	assert.ErrorIs(t, m.submitErr, common.ErrInvalidPayload)
	assert.False(t, m.submitting)
	assert.Contains(t, d.View(), "amount is required")
	assert.Zero(t, fb.PredictCalls())
	assert.Empty(t, fb.Logged())
}

func TestSubmit_PredictFailureSurfaced(t *testing.T) {
	d, fb := newTestDriver(t)
	d.Init()
	fb.FailPredict(1)

	enterAmount(d, "900")
	d.Send(tuitesting.KeyEnter())

	m := current(d)
	assert.ErrorIs(t, m.submitErr, common.ErrBackendStatus)
	assert.Nil(t, m.result)
	assert.False(t, m.submitting)
	assert.Empty(t, fb.Logged(), "nothing is logged without a prediction")
	assert.Contains(t, d.View(), "Error:")

	d.Send(tuitesting.KeyEnter())
	assert.NoError(t, current(d).submitErr, "a successful retry clears the error")
	assert.Len(t, fb.Logged(), 1)
}

func TestSubmit_LogFailureSkipsRefresh(t *testing.T) {
	d, fb := newTestDriver(t)
	d.Init()
	fb.FailLog(1)

	enterAmount(d, "900")
	d.Send(tuitesting.KeyEnter())

	m := current(d)
	require.NotNil(t, m.result, "the result card still shows")
	assert.ErrorIs(t, m.submitErr, common.ErrBackendStatus)
	assert.Equal(t, 1, m.charts[chartBank].Updates())
	assert.Contains(t, d.View(), "80%")
}

func TestStats_FailureSurfacedAndRecovered(t *testing.T) {
	d, fb := newTestDriver(t)
	fb.FailStats(1)

	d.Init()

	m := current(d)
	assert.ErrorIs(t, m.statsErr, common.ErrBackendStatus)
	assert.Nil(t, m.Charts())
	assert.Contains(t, d.View(), "Stats unavailable")

	d.Send(tuitesting.KeyCtrl("r"))

	m = current(d)
	assert.NoError(t, m.statsErr)
	assert.Len(t, m.Charts(), chartCount)
	assert.NotContains(t, d.View(), "Stats unavailable")
}

func TestStats_FailureKeepsLastCharts(t *testing.T) {
	d, fb := newTestDriver(t)
	d.Init()
	enterAmount(d, "900")
	d.Send(tuitesting.KeyEnter())

	fb.FailStats(1)
	d.Send(tuitesting.KeyCtrl("r"))

	m := current(d)
	assert.Error(t, m.statsErr)
	assert.Equal(t, []string{"SBI"}, m.charts[chartBank].Data().Labels)
}

func TestStats_StaleResponseDropped(t *testing.T) {
	d, _ := newTestDriver(t)
	d.Init()
	d.Send(tuitesting.KeyCtrl("r"))
	m := current(d)
	require.Equal(t, uint64(2), m.refreshGen)

	stale := model.Stats{BankStats: []model.BankStat{{Bank: "PNB", AvgSuccess: 10}}}
	d.Send(statsMsg{gen: 1, stats: stale})
	assert.Empty(t, current(d).charts[chartBank].Data().Labels)

	d.Send(statsMsg{gen: 2, err: errors.New("late")})
	assert.Error(t, current(d).statsErr)
}

func TestForm_CyclesChoicesAndWraps(t *testing.T) {
	f := newForm(false)

	assert.True(t, f.Cycle(1))
	assert.Equal(t, "Card", f.fields[fieldMethod].value())
	f.Cycle(-1)
	f.Cycle(-1)
	assert.Equal(t, "Wallet", f.fields[fieldMethod].value())

	f.Move(2)
	assert.Equal(t, fieldAmount, f.Focused())
	assert.False(t, f.Cycle(1), "amount is not a select")

	f.Move(-3)
	assert.Equal(t, fieldFailures, f.Focused())
}

func TestForm_View(t *testing.T) {
	f := newForm(false)
	f.Cycle(1)

	view := tuitesting.NormalizeWhitespace(tuitesting.StripANSI(f.View(themes.GetTheme("default"))))
	assert.True(t, tuitesting.ContainsInOrder(view,
		"Manual Prediction",
		"▸ Method ‹ Card ›",
		"Bank ‹ SBI ›",
		"Amount",
		"Network ‹ Average ›",
		"Time of day ‹ Evening ›",
		"Retries",
		"Past failures",
	), view)
}

func TestForm_Payload(t *testing.T) {
	tests := []struct {
		values  map[int]string
		name    string
		wantErr string
		want    model.PredictionPayload
	}{
		{
			name:   "defaults",
			values: map[int]string{fieldAmount: "1500"},
			want: model.PredictionPayload{
				Method: "UPI", Bank: "SBI", Amount: 1500,
				Network: "Average", TimeOfDay: "Evening",
			},
		},
		{
			name: "all fields",
			values: map[int]string{
				fieldMethod: "wallet", fieldBank: "hdfc", fieldAmount: "20000.5",
				fieldNetwork: "fast", fieldTime: "late night", fieldRetries: "1", fieldFailures: "3",
			},
			want: model.PredictionPayload{
				Method: "Wallet", Bank: "HDFC", Amount: 20000.5,
				Network: "Fast", TimeOfDay: "Late Night", Retries: 1, PastFailures: 3,
			},
		},
		{
			name:    "missing amount",
			values:  map[int]string{},
			wantErr: "amount is required",
		},
		{
			name:    "zero amount",
			values:  map[int]string{fieldAmount: "0"},
			wantErr: "positive number",
		},
		{
			name:    "not a number",
			values:  map[int]string{fieldAmount: "NaN"},
			wantErr: "positive number",
		},
		{
			name:    "infinite amount",
			values:  map[int]string{fieldAmount: "Inf"},
			wantErr: "positive number",
		},
		{
			name:    "fractional retries",
			values:  map[int]string{fieldAmount: "10", fieldRetries: "1.5"},
			wantErr: "retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newForm(false)
			for field, v := range tt.values {
				require.NoError(t, f.Set(field, v))
			}

			got, err := f.Payload()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidPayload)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForm_SetRejectsUnknownChoice(t *testing.T) {
	f := newForm(false)
	err := f.Set(fieldNetwork, "5G")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fast, Average, Slow")
	assert.Error(t, f.Set(fieldCount, "x"))
}

func TestQuit(t *testing.T) {
	d, _ := newTestDriver(t)
	d.Init()
	d.Send(tuitesting.KeyEsc())
	assert.True(t, d.Quit)
	assert.Empty(t, d.View())
}

func TestConfig_RequiresBackend(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, cfg.validate())
	assert.Error(t, Run(context.Background()))
}

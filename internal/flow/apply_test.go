package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/receiver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, s State, events ...Event) (State, []Effect) {
	t.Helper()
	var effects []Effect
	for _, ev := range events {
		var out []Effect
		s, out = Apply(s, ev)
		effects = append(effects, out...)
	}
	return s, effects
}

func loggedIn(t *testing.T) State {
	t.Helper()
	s, _ := apply(t, New(0), Login{Username: "asha", Password: "secret"})
	require.Equal(t, ScreenTypeSelect, s.Screen)
	return s
}

func resolved(t *testing.T) State {
	t.Helper()
	s, _ := apply(t, loggedIn(t),
		SelectMethod{Method: model.MethodMobile},
		EditField{Field: FieldMobile, Value: "9876543210"},
	)
	s, effects := Apply(s, LookupDue{})
	require.Len(t, effects, 1)
	req := effects[0].(ResolveReceiver)
	got, err := receiver.Synthesize(req.Request)
	require.NoError(t, err)
	s, _ = Apply(s, ReceiverResolved{Pass: req.Pass, Request: req.Request, Receiver: got})
	require.True(t, s.CanContinue())
	return s
}

func predicted(t *testing.T, prob int) State {
	t.Helper()
	s, _ := apply(t, resolved(t), Continue{}, EditAmount{Value: "250"})
	s, effects := Apply(s, AmountDue{})
	require.Len(t, effects, 1)
	req := effects[0].(RequestPrediction)
	s, _ = Apply(s, PredictionReady{Pass: req.Pass, Amount: req.Amount, Prediction: model.Prediction{SuccessProb: prob, Reason: "r"}})
	require.True(t, s.CanPay())
	return s
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		ev         Login
		wantScreen Screen
		wantNotice string
	}{
		{name: "valid", ev: Login{Username: " asha ", Password: "x"}, wantScreen: ScreenTypeSelect},
		{name: "missing user", ev: Login{Password: "x"}, wantScreen: ScreenLogin, wantNotice: NoticeLoginRequired},
		{name: "blank password", ev: Login{Username: "asha", Password: "   "}, wantScreen: ScreenLogin, wantNotice: NoticeLoginRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, effects := Apply(New(0), tt.ev)
			assert.Empty(t, effects)
			assert.Equal(t, tt.wantScreen, s.Screen)
			assert.Equal(t, tt.wantNotice, s.Notice)
			if tt.wantScreen == ScreenTypeSelect {
				require.NotNil(t, s.Session)
				assert.Equal(t, "asha", s.Session.Username)
			}
		})
	}
}

func TestSelectMethod_ClearsPriorInput(t *testing.T) {
	for _, method := range model.Methods {
		t.Run(string(method), func(t *testing.T) {
			s := resolved(t)
			s, _ = apply(t, s, Back{})
			require.Equal(t, ScreenTypeSelect, s.Screen)

			s, effects := Apply(s, SelectMethod{Method: method})

			assert.Equal(t, ScreenDetails, s.Screen)
			assert.Equal(t, method, s.Method)
			assert.Equal(t, receiver.Fields{}, s.Fields)
			assert.Nil(t, s.Receiver)
			assert.Nil(t, s.Prediction)
			assert.False(t, s.CanContinue())
			assert.Contains(t, effects, Effect(CancelLookup{}))
		})
	}
}

func TestEditField_InvalidatesReceiverAndSchedules(t *testing.T) {
	s := resolved(t)

	s, effects := Apply(s, EditField{Field: FieldMobile, Value: "987654321"})

	assert.Nil(t, s.Receiver)
	assert.False(t, s.CanContinue())
	assert.Equal(t, []Effect{ScheduleLookup{}}, effects)

	s, effects = Apply(s, LookupDue{})
	assert.Empty(t, effects, "malformed input stays silent")
	assert.Empty(t, s.Notice)
	assert.False(t, s.Resolving)
}

func TestLookup_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		method   model.Method
		edits    []EditField
		wantName string
		wantBank string
		wantID   string
	}{
		{
			name:     "mobile",
			method:   model.MethodMobile,
			edits:    []EditField{{Field: FieldMobile, Value: "9876543210"}},
			wantName: "Merchant 3210",
			wantBank: "SBI",
			wantID:   "9876543210@upi",
		},
		{
			name:     "upi",
			method:   model.MethodUPI,
			edits:    []EditField{{Field: FieldUPI, Value: "john.doe@icici"}},
			wantName: "john doe",
			wantBank: "ICICI",
			wantID:   "john.doe@icici",
		},
		{
			name:   "bank",
			method: model.MethodBank,
			edits: []EditField{
				{Field: FieldAccount, Value: "123456789"},
				{Field: FieldIFSC, Value: "hdfc0001234"},
			},
			wantName: "A/C Merchant",
			wantBank: "HDFC",
			wantID:   "123456789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := Apply(loggedIn(t), SelectMethod{Method: tt.method})
			for _, ev := range tt.edits {
				s, _ = Apply(s, ev)
			}

			s, effects := Apply(s, LookupDue{})
			require.Len(t, effects, 1)
			eff := effects[0].(ResolveReceiver)
			assert.True(t, s.Resolving)
			assert.False(t, s.CanContinue())

			r, err := receiver.Synthesize(eff.Request)
			require.NoError(t, err)
			s, _ = Apply(s, ReceiverResolved{Pass: eff.Pass, Request: eff.Request, Receiver: r})

			require.NotNil(t, s.Receiver)
			assert.Equal(t, tt.wantName, s.Receiver.Name)
			assert.Equal(t, tt.wantBank, s.Receiver.Bank)
			assert.Equal(t, tt.wantID, s.Receiver.Identifier())
			assert.True(t, s.CanContinue())
			assert.False(t, s.Resolving)
		})
	}
}

func TestReceiverResolved_StaleIsDropped(t *testing.T) {
	s, _ := apply(t, loggedIn(t),
		SelectMethod{Method: model.MethodMobile},
		EditField{Field: FieldMobile, Value: "9876543210"},
	)
	s, effects := Apply(s, LookupDue{})
	old := effects[0].(ResolveReceiver)

	t.Run("input changed", func(t *testing.T) {
		next, _ := Apply(s, EditField{Field: FieldMobile, Value: "9876543211"})
		next, _ = Apply(next, ReceiverResolved{Pass: old.Pass, Request: old.Request, Receiver: model.Receiver{Name: "Merchant 3210"}})
		assert.Nil(t, next.Receiver)
	})

	t.Run("method reselected", func(t *testing.T) {
		next, _ := apply(t, s, Back{}, SelectMethod{Method: model.MethodMobile}, EditField{Field: FieldMobile, Value: "9876543210"})
		next, _ = Apply(next, ReceiverResolved{Pass: old.Pass, Request: old.Request, Receiver: model.Receiver{Name: "Merchant 3210"}})
		assert.Nil(t, next.Receiver)
	})

	t.Run("failure after logout", func(t *testing.T) {
		next, _ := apply(t, s, ToggleMenu{}, Logout{})
		next, _ = Apply(next, ReceiverFailed{Pass: old.Pass, Request: old.Request, Err: errors.New("boom")})
		assert.Empty(t, next.Notice)
	})
}

func TestReceiverFailed_Surfaces(t *testing.T) {
	s, _ := apply(t, loggedIn(t),
		SelectMethod{Method: model.MethodUPI},
		EditField{Field: FieldUPI, Value: "john.doe@icici"},
	)
	s, effects := Apply(s, LookupDue{})
	eff := effects[0].(ResolveReceiver)

	s, _ = Apply(s, ReceiverFailed{Pass: eff.Pass, Request: eff.Request, Err: errors.New("lookup timed out")})

	assert.False(t, s.Resolving)
	assert.Nil(t, s.Receiver)
	assert.Equal(t, "Could not fetch receiver: lookup timed out", s.Notice)

	err := common.NewUserError("directory offline", errors.New("dial tcp: connection refused"))
	s, effects = Apply(s, EditField{Field: FieldUPI, Value: "jane@hdfc"})
	require.NotEmpty(t, effects)
	s, effects = Apply(s, LookupDue{})
	eff = effects[0].(ResolveReceiver)
	s, _ = Apply(s, ReceiverFailed{Pass: eff.Pass, Request: eff.Request, Err: err})
	assert.Equal(t, "Could not fetch receiver: directory offline", s.Notice)
}

func TestContinue_Guard(t *testing.T) {
	s, _ := apply(t, loggedIn(t), SelectMethod{Method: model.MethodMobile})
	s, _ = Apply(s, Continue{})
	assert.Equal(t, ScreenDetails, s.Screen)

	s = resolved(t)
	s, _ = Apply(s, Continue{})
	assert.Equal(t, ScreenAmount, s.Screen)
	assert.Empty(t, s.Amount)
	assert.Nil(t, s.Prediction)
}

func TestAmount_Prediction(t *testing.T) {
	s, _ := apply(t, resolved(t), Continue{})
	pass := s.Pass

	s, effects := Apply(s, EditAmount{Value: "6000"})
	assert.Equal(t, []Effect{ScheduleAmount{}}, effects)
	assert.False(t, s.CanPay())

	s, effects = Apply(s, AmountDue{})
	require.Len(t, effects, 1)
	req := effects[0].(RequestPrediction)
	assert.Equal(t, pass, req.Pass)
	assert.Equal(t, "6000", req.Amount)
	assert.Equal(t, model.PredictionPayload{
		Method:    "mobile",
		Bank:      "SBI",
		Network:   "Average",
		TimeOfDay: "Evening",
		Amount:    6000,
	}, req.Payload)
	assert.True(t, s.Predicting)

	s, _ = Apply(s, PredictionReady{Pass: req.Pass, Amount: req.Amount, Prediction: model.Prediction{SuccessProb: 72, Reason: "High chance of success"}})
	assert.True(t, s.CanPay())
	assert.False(t, s.Predicting)
}

func TestAmount_InvalidAmountDoesNotPredict(t *testing.T) {
	for _, v := range []string{"", "0", "-5", "abc", "NaN", "nan", "Inf", "infinity", "1e400"} {
		s, _ := apply(t, resolved(t), Continue{}, EditAmount{Value: v})
		_, effects := Apply(s, AmountDue{})
		assert.Empty(t, effects, "amount %q", v)
	}
}

func TestPredictionReady_Stale(t *testing.T) {
	s, _ := apply(t, resolved(t), Continue{}, EditAmount{Value: "100"})
	s, effects := Apply(s, AmountDue{})
	req := effects[0].(RequestPrediction)

	edited, _ := Apply(s, EditAmount{Value: "1000"})
	edited, _ = Apply(edited, PredictionReady{Pass: req.Pass, Amount: req.Amount, Prediction: model.Prediction{SuccessProb: 80}})
	assert.Nil(t, edited.Prediction)

	backed, _ := apply(t, s, Back{}, Continue{}, EditAmount{Value: "100"})
	backed, _ = Apply(backed, PredictionReady{Pass: req.Pass, Amount: req.Amount, Prediction: model.Prediction{SuccessProb: 80}})
	assert.Nil(t, backed.Prediction)
}

func TestPayNow_Guard(t *testing.T) {
	s, _ := apply(t, resolved(t), Continue{}, PayNow{})
	assert.Equal(t, ScreenAmount, s.Screen)

	s, _ = Apply(predicted(t, 80), PayNow{})
	assert.Equal(t, ScreenPin, s.Screen)
	assert.Empty(t, s.Pin)
}

func TestPin(t *testing.T) {
	s, _ := Apply(predicted(t, 80), PayNow{})

	s, effects := Apply(s, PinConfirm{})
	assert.Empty(t, effects)
	assert.Equal(t, ScreenPin, s.Screen)

	for _, d := range "123456" {
		s, _ = Apply(s, PinDigit{Digit: d})
		assert.LessOrEqual(t, len(s.Pin), PinLength)
	}
	assert.Equal(t, "1234", s.Pin)

	s, _ = Apply(s, PinDigit{Digit: 'x'})
	assert.Equal(t, "1234", s.Pin)

	s, _ = Apply(s, PinBackspace{})
	assert.Equal(t, "123", s.Pin)
	assert.False(t, s.CanConfirmPin())

	s, effects = Apply(s, PinConfirm{})
	assert.Empty(t, effects)
	assert.Equal(t, ScreenPin, s.Screen)

	s, _ = Apply(s, PinDigit{Digit: '9'})
	s, effects = Apply(s, PinConfirm{})
	assert.Equal(t, ScreenProcessing, s.Screen)
	assert.Empty(t, s.Pin)
	require.Len(t, effects, 1)
	start := effects[0].(StartProcessing)
	assert.Equal(t, s.Pass, start.Pass)
	assert.Equal(t, "250", start.Payment.Amount)
	assert.Equal(t, "Merchant 3210", start.Payment.ReceiverName)
	require.NotNil(t, start.Payment.Prediction)
	assert.Equal(t, 80, start.Payment.Prediction.SuccessProb)
}

func TestPinBackspace_Empty(t *testing.T) {
	s, _ := Apply(predicted(t, 80), PayNow{})
	s, _ = Apply(s, PinBackspace{})
	assert.Empty(t, s.Pin)
}

func processing(t *testing.T, s State) (State, StartProcessing) {
	t.Helper()
	s, _ = Apply(s, PayNow{})
	for _, d := range "1234" {
		s, _ = Apply(s, PinDigit{Digit: d})
	}
	s, effects := Apply(s, PinConfirm{})
	require.Len(t, effects, 1)
	return s, effects[0].(StartProcessing)
}

func TestOutcomeAndDone(t *testing.T) {
	s, start := processing(t, predicted(t, 80))

	s, effects := Apply(s, OutcomeReady{Pass: start.Pass, Outcome: model.Outcome{Status: model.OutcomeSuccess, Title: "Payment Successful"}})
	assert.Equal(t, ScreenResult, s.Screen)
	require.NotNil(t, s.Outcome)
	require.Len(t, effects, 1)
	rec := effects[0].(RecordOutcome)
	assert.Equal(t, "success", rec.Entry.Status)
	assert.Equal(t, float64(80), rec.Entry.SuccessProb)
	assert.Equal(t, float64(250), rec.Entry.Amount)

	s, _ = Apply(s, Done{})
	assert.Equal(t, ScreenTypeSelect, s.Screen)
	assert.Nil(t, s.Receiver)
	assert.Nil(t, s.Prediction)
	assert.Nil(t, s.Outcome)
	assert.Empty(t, s.Pin)
	assert.Equal(t, model.MethodNone, s.Method)
	require.NotNil(t, s.Session)
	assert.Equal(t, "asha", s.Session.Username)
}

func TestOutcomeReady_StaleAfterLogout(t *testing.T) {
	s, start := processing(t, predicted(t, 80))
	s.Screen = ScreenLogin

	s, effects := Apply(s, OutcomeReady{Pass: start.Pass, Outcome: model.Outcome{Status: model.OutcomeFail}})

	assert.Empty(t, effects)
	assert.Nil(t, s.Outcome)
}

func TestBack(t *testing.T) {
	tests := []struct {
		name  string
		state func(t *testing.T) State
		want  Screen
	}{
		{name: "login has none", state: func(*testing.T) State { return New(0) }, want: ScreenLogin},
		{name: "type select has none", state: loggedIn, want: ScreenTypeSelect},
		{name: "details", state: resolved, want: ScreenTypeSelect},
		{name: "amount", state: func(t *testing.T) State { s, _ := Apply(resolved(t), Continue{}); return s }, want: ScreenDetails},
		{name: "pin", state: func(t *testing.T) State { s, _ := Apply(predicted(t, 80), PayNow{}); return s }, want: ScreenAmount},
		{name: "processing has none", state: func(t *testing.T) State { s, _ := processing(t, predicted(t, 80)); return s }, want: ScreenProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := Apply(tt.state(t), Back{})
			assert.Equal(t, tt.want, s.Screen)
		})
	}
}

func TestBack_FromResultResets(t *testing.T) {
	s, start := processing(t, predicted(t, 80))
	s, _ = Apply(s, OutcomeReady{Pass: start.Pass, Outcome: model.Outcome{Status: model.OutcomeFail}})

	s, _ = Apply(s, Back{})

	assert.Equal(t, ScreenTypeSelect, s.Screen)
	assert.Nil(t, s.Receiver)
	assert.Nil(t, s.Prediction)
}

func TestBack_ToAmountKeepsPrediction(t *testing.T) {
	s, _ := apply(t, predicted(t, 80), PayNow{}, PinDigit{Digit: '1'}, Back{})

	assert.Equal(t, ScreenAmount, s.Screen)
	assert.Empty(t, s.Pin)
	assert.True(t, s.CanPay())
}

func TestChromeVisibility(t *testing.T) {
	tests := []struct {
		screen Screen
		back   bool
		menu   bool
	}{
		{screen: ScreenLogin, back: false, menu: false},
		{screen: ScreenTypeSelect, back: false, menu: true},
		{screen: ScreenDetails, back: true, menu: true},
		{screen: ScreenAmount, back: true, menu: true},
		{screen: ScreenPin, back: true, menu: false},
		{screen: ScreenProcessing, back: false, menu: false},
		{screen: ScreenResult, back: true, menu: true},
	}

	for _, tt := range tests {
		t.Run(tt.screen.String(), func(t *testing.T) {
			s := State{Screen: tt.screen}
			assert.Equal(t, tt.back, s.BackVisible())
			assert.Equal(t, tt.menu, s.MenuVisible())
		})
	}
}

func TestMenuAndLogout(t *testing.T) {
	s := predicted(t, 40)
	s.DevPanel = true
	s, _ = Apply(s, SetForceMode{Mode: model.ForceFail})

	s, _ = Apply(s, Logout{})
	assert.Equal(t, ScreenAmount, s.Screen, "logout needs the menu open")

	s, _ = Apply(s, ToggleMenu{})
	assert.True(t, s.MenuOpen)
	s, _ = Apply(s, DismissMenu{})
	assert.False(t, s.MenuOpen)

	s, _ = apply(t, s, ToggleMenu{}, Logout{})
	assert.Equal(t, ScreenLogin, s.Screen)
	assert.Nil(t, s.Session)
	assert.Nil(t, s.Receiver)
	assert.Nil(t, s.Prediction)
	assert.Equal(t, receiver.Fields{}, s.Fields)
	assert.Empty(t, s.Amount)
	assert.False(t, s.DevPanel)
	assert.False(t, s.MenuOpen)
	assert.Equal(t, model.ForceFail, s.ForceMode)
}

func TestToggleMenu_HiddenScreens(t *testing.T) {
	s, _ := Apply(New(0), ToggleMenu{})
	assert.False(t, s.MenuOpen)

	s, _ = Apply(predicted(t, 80), PayNow{})
	s, _ = Apply(s, ToggleMenu{})
	assert.False(t, s.MenuOpen)
}

func TestTapPrediction(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	at := func(ms int) TapPrediction { return TapPrediction{At: base.Add(time.Duration(ms) * time.Millisecond)} }

	t.Run("three quick taps reveal", func(t *testing.T) {
		s, _ := apply(t, predicted(t, 80), at(0), at(200), at(450))
		assert.True(t, s.DevPanel)
	})

	t.Run("spaced taps do not accumulate", func(t *testing.T) {
		s, _ := apply(t, predicted(t, 80), at(0), at(400), at(700), at(1400), at(2100))
		assert.False(t, s.DevPanel)
	})

	t.Run("new window after expiry", func(t *testing.T) {
		s, _ := apply(t, predicted(t, 80), at(0), at(300), at(700), at(800), at(900))
		assert.True(t, s.DevPanel)
	})

	t.Run("no prediction no taps", func(t *testing.T) {
		s, _ := Apply(resolved(t), Continue{})
		s, _ = apply(t, s, at(0), at(10), at(20))
		assert.False(t, s.DevPanel)
	})

	t.Run("custom window", func(t *testing.T) {
		s := predicted(t, 80)
		s.tapWindow = 100 * time.Millisecond
		s, _ = apply(t, s, at(0), at(60), at(120))
		assert.False(t, s.DevPanel)
	})
}

func TestSetForceMode_NeedsPanel(t *testing.T) {
	s := predicted(t, 80)

	s, _ = Apply(s, SetForceMode{Mode: model.ForceSuccess})
	assert.Equal(t, model.ForceNone, s.ForceMode)

	s.DevPanel = true
	s, _ = Apply(s, SetForceMode{Mode: model.ForceModerate})
	assert.Equal(t, model.ForceModerate, s.ForceMode)
	assert.Equal(t, "FORCE MODERATE", s.Notice)

	s, _ = Apply(s, ClearNotice{})
	assert.Empty(t, s.Notice)
}

func TestReceiverAndPredictionClearedTogether(t *testing.T) {
	resets := map[string]func(*testing.T, State) State{
		"logout": func(t *testing.T, s State) State { s, _ = apply(t, s, ToggleMenu{}, Logout{}); return s },
		"done": func(t *testing.T, s State) State {
			s, start := processing(t, s)
			s, _ = apply(t, s, OutcomeReady{Pass: start.Pass, Outcome: model.Outcome{Status: model.OutcomeSuccess}}, Done{})
			return s
		},
	}

	for name, reset := range resets {
		t.Run(name, func(t *testing.T) {
			s := reset(t, predicted(t, 80))
			assert.Nil(t, s.Receiver)
			assert.Nil(t, s.Prediction)
		})
	}
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount(" 12.5 ")
	assert.True(t, ok)
	assert.InDelta(t, 12.5, v, 0.0001)

	for _, in := range []string{"0", "-1", "NaN", "nan", "Inf", "+Inf", "-inf", "infinity", "1e400"} {
		_, ok = ParseAmount(in)
		assert.False(t, ok, "amount %q", in)
	}
}

func TestState_ReceiverName(t *testing.T) {
	assert.Equal(t, "—", State{}.ReceiverName())
	assert.Equal(t, "Merchant 3210", State{Receiver: &model.Receiver{Name: "Merchant 3210"}}.ReceiverName())
}

// Package flow is the mobile payment state machine. Apply is a pure
// function of the current state and an event; anything asynchronous is
// returned as an Effect for the caller to run.
package flow

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/receiver"
)

// Screen is one step of the mobile flow.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenTypeSelect
	ScreenDetails
	ScreenAmount
	ScreenPin
	ScreenProcessing
	ScreenResult
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Login"
	case ScreenTypeSelect:
		return "Send Money"
	case ScreenDetails:
		return "Receiver Details"
	case ScreenAmount:
		return "Amount"
	case ScreenPin:
		return "Enter PIN"
	case ScreenProcessing:
		return "Processing"
	case ScreenResult:
		return "Result"
	default:
		return "Unknown"
	}
}

// PinLength is the number of digits in a UPI PIN.
const PinLength = 4

// DefaultTapWindow is how long a burst of prediction-card taps may last.
const DefaultTapWindow = 600 * time.Millisecond

// TapsToReveal is the number of taps inside one window that opens the
// developer panel.
const TapsToReveal = 3

// State is everything the mobile flow knows about the current payment.
type State struct {
	tapStart   time.Time
	Session    *model.Session
	Receiver   *model.Receiver
	Prediction *model.Prediction
	Outcome    *model.Outcome
	Fields     receiver.Fields
	Method     model.Method
	Amount     string
	Pin        string
	ForceMode  model.ForceMode
	Notice     string
	Screen     Screen
	// Pass increases whenever the flow moves to a new scope; async results
	// issued under an older pass are dropped.
	Pass       int
	taps       int
	tapWindow  time.Duration
	Resolving  bool
	Predicting bool
	DevPanel   bool
	MenuOpen   bool
}

// New returns the initial state on the login screen. A non-positive
// tapWindow uses DefaultTapWindow.
func New(tapWindow time.Duration) State {
	if tapWindow <= 0 {
		tapWindow = DefaultTapWindow
	}
	return State{
		Screen:    ScreenLogin,
		tapWindow: tapWindow,
	}
}

// CanContinue reports whether the details screen may advance.
func (s State) CanContinue() bool {
	return s.Screen == ScreenDetails && s.Receiver != nil
}

// CanPay reports whether Pay Now is enabled.
func (s State) CanPay() bool {
	return s.Screen == ScreenAmount && s.Prediction != nil
}

// CanConfirmPin reports whether OK on the keypad starts processing.
func (s State) CanConfirmPin() bool {
	return s.Screen == ScreenPin && len(s.Pin) == PinLength
}

// BackVisible reports whether the back control is shown.
func (s State) BackVisible() bool {
	_, ok := BackTarget(s.Screen)
	return ok
}

// MenuVisible reports whether the overflow menu button is shown.
func (s State) MenuVisible() bool {
	return MenuAvailable(s.Screen)
}

// BackTarget returns the predecessor of screen.
func BackTarget(screen Screen) (Screen, bool) {
	switch screen {
	case ScreenDetails:
		return ScreenTypeSelect, true
	case ScreenAmount:
		return ScreenDetails, true
	case ScreenPin:
		return ScreenAmount, true
	case ScreenResult:
		return ScreenTypeSelect, true
	default:
		return screen, false
	}
}

// MenuAvailable reports whether screen shows the overflow menu.
func MenuAvailable(screen Screen) bool {
	switch screen {
	case ScreenLogin, ScreenPin, ScreenProcessing:
		return false
	default:
		return true
	}
}

// ParseAmount reads the amount field. Anything that is not a positive
// finite number yields false.
func ParseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Payload builds the prediction context for the current receiver and
// amount.
func (s State) Payload(amount float64) model.PredictionPayload {
	bank := model.DefaultBank
	if s.Receiver != nil && s.Receiver.Bank != "" {
		bank = s.Receiver.Bank
	}
	return model.PredictionPayload{
		Method:    string(s.Method),
		Bank:      bank,
		Amount:    amount,
		Network:   model.DefaultNetwork,
		TimeOfDay: model.DefaultTimeOfDay,
	}
}

// ReceiverName is the display name used in the result message.
func (s State) ReceiverName() string {
	if s.Receiver == nil || s.Receiver.Name == "" {
		return "—"
	}
	return s.Receiver.Name
}

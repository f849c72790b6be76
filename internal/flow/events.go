package flow

import (
	"time"

	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/risk"
	"github.com/payarise/payarise/internal/service"
)

// Event is an input to Apply.
type Event interface {
	isEvent()
}

// Field names one input on the details screen.
type Field int

const (
	FieldMobile Field = iota
	FieldUPI
	FieldAccount
	FieldIFSC
)

type (
	// Login submits the login form.
	Login struct {
		Username string
		Password string
	}

	// SelectMethod picks a transfer type card.
	SelectMethod struct {
		Method model.Method
	}

	// EditField replaces the value of one details field.
	EditField struct {
		Value string
		Field Field
	}

	// LookupDue fires when the details debounce elapses.
	LookupDue struct{}

	// ReceiverResolved delivers a lookup result.
	ReceiverResolved struct {
		Request  service.ReceiverRequest
		Receiver model.Receiver
		Pass     int
	}

	// ReceiverFailed delivers a lookup error.
	ReceiverFailed struct {
		Err     error
		Request service.ReceiverRequest
		Pass    int
	}

	// Continue taps the Continue button on the details screen.
	Continue struct{}

	// EditAmount replaces the amount field.
	EditAmount struct {
		Value string
	}

	// AmountDue fires when the amount debounce elapses.
	AmountDue struct{}

	// PredictionReady delivers a prediction for Amount.
	PredictionReady struct {
		Amount     string
		Prediction model.Prediction
		Pass       int
	}

	// TapPrediction taps the prediction card.
	TapPrediction struct {
		At time.Time
	}

	// SetForceMode presses a developer panel button.
	SetForceMode struct {
		Mode model.ForceMode
	}

	// PayNow taps Pay Now.
	PayNow struct{}

	// PinDigit presses a keypad digit.
	PinDigit struct {
		Digit rune
	}

	// PinBackspace presses the keypad backspace.
	PinBackspace struct{}

	// PinConfirm presses OK on the keypad.
	PinConfirm struct{}

	// OutcomeReady delivers the resolved payment outcome.
	OutcomeReady struct {
		Outcome model.Outcome
		Pass    int
	}

	// Done leaves the result screen.
	Done struct{}

	// Back presses the back control.
	Back struct{}

	// ToggleMenu presses the overflow menu button.
	ToggleMenu struct{}

	// DismissMenu is any interaction outside the open menu.
	DismissMenu struct{}

	// Logout picks Logout from the overflow menu.
	Logout struct{}

	// ClearNotice acknowledges the current notice.
	ClearNotice struct{}
)

func (Login) isEvent()            {}
func (SelectMethod) isEvent()     {}
func (EditField) isEvent()        {}
func (LookupDue) isEvent()        {}
func (ReceiverResolved) isEvent() {}
func (ReceiverFailed) isEvent()   {}
func (Continue) isEvent()         {}
func (EditAmount) isEvent()       {}
func (AmountDue) isEvent()        {}
func (PredictionReady) isEvent()  {}
func (TapPrediction) isEvent()    {}
func (SetForceMode) isEvent()     {}
func (PayNow) isEvent()           {}
func (PinDigit) isEvent()         {}
func (PinBackspace) isEvent()     {}
func (PinConfirm) isEvent()       {}
func (OutcomeReady) isEvent()     {}
func (Done) isEvent()             {}
func (Back) isEvent()             {}
func (ToggleMenu) isEvent()       {}
func (DismissMenu) isEvent()      {}
func (Logout) isEvent()           {}
func (ClearNotice) isEvent()      {}

// Effect is work Apply asks the caller to perform.
type Effect interface {
	isEffect()
}

type (
	// ScheduleLookup restarts the details debounce.
	ScheduleLookup struct{}

	// CancelLookup drops any pending details debounce.
	CancelLookup struct{}

	// ResolveReceiver runs the receiver resolver and reports back with
	// ReceiverResolved or ReceiverFailed.
	ResolveReceiver struct {
		Request service.ReceiverRequest
		Pass    int
	}

	// ScheduleAmount restarts the amount debounce.
	ScheduleAmount struct{}

	// CancelAmount drops any pending amount debounce.
	CancelAmount struct{}

	// RequestPrediction runs the prediction client and reports back with
	// PredictionReady.
	RequestPrediction struct {
		Amount  string
		Payload model.PredictionPayload
		Pass    int
	}

	// StartProcessing waits out the processing delay, resolves the outcome
	// and reports back with OutcomeReady.
	StartProcessing struct {
		Payment risk.Payment
		Pass    int
	}

	// RecordOutcome offers a finished payment for logging.
	RecordOutcome struct {
		Entry model.LogEntry
	}
)

func (ScheduleLookup) isEffect()    {}
func (CancelLookup) isEffect()      {}
func (ResolveReceiver) isEffect()   {}
func (ScheduleAmount) isEffect()    {}
func (CancelAmount) isEffect()      {}
func (RequestPrediction) isEffect() {}
func (StartProcessing) isEffect()   {}
func (RecordOutcome) isEffect()     {}

package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/receiver"
	"github.com/payarise/payarise/internal/risk"
)

// Notices shown by the flow.
const (
	NoticeLoginRequired = "Enter username and password (demo)"
	noticeLookupFailed  = "Could not fetch receiver: %s"
)

// Apply returns the state after ev and the effects the caller must run.
// Events that do not apply to the current screen leave the state unchanged.
func Apply(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Login:
		return login(s, ev)
	case SelectMethod:
		return selectMethod(s, ev)
	case EditField:
		return editField(s, ev)
	case LookupDue:
		return lookupDue(s)
	case ReceiverResolved:
		if s.Screen != ScreenDetails || ev.Pass != s.Pass || !s.current(ev.Request.Identifier, ev.Request.IFSC) {
			return s, nil
		}
		r := ev.Receiver
		s.Receiver = &r
		s.Resolving = false
		return s, nil
	case ReceiverFailed:
		if s.Screen != ScreenDetails || ev.Pass != s.Pass || !s.current(ev.Request.Identifier, ev.Request.IFSC) {
			return s, nil
		}
		s.Resolving = false
		s.Notice = fmt.Sprintf(noticeLookupFailed, common.UserMessage(ev.Err))
		return s, nil
	case Continue:
		if !s.CanContinue() {
			return s, nil
		}
		s.Screen = ScreenAmount
		s.Amount = ""
		s.Prediction = nil
		s.Predicting = false
		s.Pass++
		return s, nil
	case EditAmount:
		if s.Screen != ScreenAmount {
			return s, nil
		}
		s.Amount = ev.Value
		s.Prediction = nil
		s.Predicting = false
		s.resetTaps()
		return s, []Effect{ScheduleAmount{}}
	case AmountDue:
		if s.Screen != ScreenAmount {
			return s, nil
		}
		amount, ok := ParseAmount(s.Amount)
		if !ok {
			return s, nil
		}
		s.Predicting = true
		return s, []Effect{RequestPrediction{Pass: s.Pass, Amount: s.Amount, Payload: s.Payload(amount)}}
	case PredictionReady:
		if s.Screen != ScreenAmount || ev.Pass != s.Pass || ev.Amount != s.Amount {
			return s, nil
		}
		p := ev.Prediction
		s.Prediction = &p
		s.Predicting = false
		return s, nil
	case TapPrediction:
		return tap(s, ev)
	case SetForceMode:
		if !s.DevPanel {
			return s, nil
		}
		s.ForceMode = ev.Mode
		s.Notice = "FORCE " + strings.ToUpper(string(ev.Mode))
		return s, nil
	case PayNow:
		if !s.CanPay() {
			return s, nil
		}
		s.Screen = ScreenPin
		s.Pin = ""
		s.MenuOpen = false
		return s, nil
	case PinDigit:
		if s.Screen == ScreenPin && ev.Digit >= '0' && ev.Digit <= '9' && len(s.Pin) < PinLength {
			s.Pin += string(ev.Digit)
		}
		return s, nil
	case PinBackspace:
		if s.Screen == ScreenPin && s.Pin != "" {
			s.Pin = s.Pin[:len(s.Pin)-1]
		}
		return s, nil
	case PinConfirm:
		if !s.CanConfirmPin() {
			return s, nil
		}
		s.Screen = ScreenProcessing
		s.Pin = ""
		return s, []Effect{StartProcessing{Pass: s.Pass, Payment: risk.Payment{
			Prediction:   s.Prediction,
			Amount:       strings.TrimSpace(s.Amount),
			ReceiverName: s.ReceiverName(),
			ForceMode:    s.ForceMode,
		}}}
	case OutcomeReady:
		if s.Screen != ScreenProcessing || ev.Pass != s.Pass {
			return s, nil
		}
		out := ev.Outcome
		s.Outcome = &out
		s.Screen = ScreenResult
		return s, []Effect{RecordOutcome{Entry: s.logEntry(out)}}
	case Done:
		if s.Screen != ScreenResult {
			return s, nil
		}
		return finish(s), []Effect{CancelLookup{}, CancelAmount{}}
	case Back:
		return back(s)
	case ToggleMenu:
		if !s.MenuVisible() {
			return s, nil
		}
		s.MenuOpen = !s.MenuOpen
		return s, nil
	case DismissMenu:
		s.MenuOpen = false
		return s, nil
	case Logout:
		if !s.MenuOpen {
			return s, nil
		}
		return logout(s), []Effect{CancelLookup{}, CancelAmount{}}
	case ClearNotice:
		s.Notice = ""
		return s, nil
	default:
		return s, nil
	}
}

func login(s State, ev Login) (State, []Effect) {
	if s.Screen != ScreenLogin {
		return s, nil
	}
	user := strings.TrimSpace(ev.Username)
	if user == "" || strings.TrimSpace(ev.Password) == "" {
		s.Notice = NoticeLoginRequired
		return s, nil
	}
	s.Session = &model.Session{Username: user}
	s.Screen = ScreenTypeSelect
	s.Notice = ""
	s.Method = model.MethodNone
	s.clearPayment()
	s.Pass++
	return s, nil
}

func selectMethod(s State, ev SelectMethod) (State, []Effect) {
	if s.Screen != ScreenTypeSelect || ev.Method == model.MethodNone {
		return s, nil
	}
	s.Method = ev.Method
	s.Fields = receiver.Fields{}
	s.Receiver = nil
	s.Prediction = nil
	s.Resolving = false
	s.Amount = ""
	s.Notice = ""
	s.Screen = ScreenDetails
	s.Pass++
	return s, []Effect{CancelLookup{}}
}

func editField(s State, ev EditField) (State, []Effect) {
	if s.Screen != ScreenDetails {
		return s, nil
	}
	switch ev.Field {
	case FieldMobile:
		s.Fields.Mobile = ev.Value
	case FieldUPI:
		s.Fields.UPI = ev.Value
	case FieldAccount:
		s.Fields.Account = ev.Value
	case FieldIFSC:
		s.Fields.IFSC = ev.Value
	}
	s.Receiver = nil
	s.Prediction = nil
	s.Resolving = false
	s.Notice = ""
	return s, []Effect{ScheduleLookup{}}
}

func lookupDue(s State) (State, []Effect) {
	if s.Screen != ScreenDetails || s.Receiver != nil {
		return s, nil
	}
	req, ok := receiver.Request(s.Method, s.Fields)
	if !ok {
		return s, nil
	}
	s.Resolving = true
	return s, []Effect{ResolveReceiver{Pass: s.Pass, Request: req}}
}

// tap counts prediction-card taps. The first tap opens a window; once the
// window has elapsed the next tap starts a new one.
func tap(s State, ev TapPrediction) (State, []Effect) {
	if s.Screen != ScreenAmount || s.Prediction == nil {
		return s, nil
	}
	if s.taps == 0 || ev.At.Sub(s.tapStart) >= s.tapWindow {
		s.tapStart = ev.At
		s.taps = 0
	}
	s.taps++
	if s.taps >= TapsToReveal {
		s.resetTaps()
		s.DevPanel = true
	}
	return s, nil
}

func back(s State) (State, []Effect) {
	target, ok := BackTarget(s.Screen)
	if !ok {
		return s, nil
	}
	if s.Screen == ScreenResult {
		return finish(s), []Effect{CancelLookup{}, CancelAmount{}}
	}
	from := s.Screen
	s.Screen = target
	s.MenuOpen = false
	s.Pass++
	switch from {
	case ScreenDetails:
		s.Resolving = false
		return s, []Effect{CancelLookup{}}
	case ScreenAmount:
		s.Predicting = false
		return s, []Effect{CancelAmount{}}
	case ScreenPin:
		s.Pin = ""
	}
	return s, nil
}

// finish leaves the result screen for a new payment, keeping the session.
func finish(s State) State {
	s.Method = model.MethodNone
	s.clearPayment()
	s.Screen = ScreenTypeSelect
	s.Pass++
	return s
}

func logout(s State) State {
	next := New(s.tapWindow)
	next.ForceMode = s.ForceMode
	next.Pass = s.Pass + 1
	return next
}

// clearPayment drops receiver and prediction together with everything
// derived from them.
func (s *State) clearPayment() {
	s.Fields = receiver.Fields{}
	s.Receiver = nil
	s.Prediction = nil
	s.Outcome = nil
	s.Amount = ""
	s.Pin = ""
	s.Resolving = false
	s.Predicting = false
	s.DevPanel = false
	s.MenuOpen = false
	s.resetTaps()
}

func (s *State) resetTaps() {
	s.taps = 0
	s.tapStart = time.Time{}
}

// current reports whether a lookup for identifier and ifsc still matches
// the fields on screen.
func (s State) current(identifier, ifsc string) bool {
	req, ok := receiver.Request(s.Method, s.Fields)
	return ok && req.Identifier == identifier && req.IFSC == ifsc
}

func (s State) logEntry(out model.Outcome) model.LogEntry {
	amount, _ := ParseAmount(s.Amount)
	entry := model.LogEntry{
		PredictionPayload: s.Payload(amount),
		Status:            string(out.Status),
	}
	if s.Prediction != nil {
		entry.SuccessProb = float64(s.Prediction.SuccessProb)
		entry.Reason = s.Prediction.Reason
	} else {
		entry.Reason = out.Message
	}
	return entry
}

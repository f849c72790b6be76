package tui

import "github.com/payarise/payarise/internal/flow"

// debounceMsg fires when a debounce timer elapses.
type debounceMsg struct {
	concern flow.Concern
	gen     uint64
}

// flowMsg carries an asynchronous result back into the state machine.
type flowMsg struct {
	event flow.Event
}

// outcomeLoggedMsg reports the result of recording a finished payment.
type outcomeLoggedMsg struct {
	err error
}

// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Method is the transfer method chosen on the type-select screen.
type Method string

// Transfer methods.
const (
	MethodNone   Method = ""
	MethodMobile Method = "mobile"
	MethodUPI    Method = "upi"
	MethodBank   Method = "bank"
)

// Methods lists the selectable transfer methods in card order.
var Methods = []Method{MethodMobile, MethodUPI, MethodBank}

// ParseMethod converts user input to a Method.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodMobile:
		return MethodMobile, nil
	case MethodUPI:
		return MethodUPI, nil
	case MethodBank:
		return MethodBank, nil
	default:
		return MethodNone, fmt.Errorf("unknown transfer method %q", s)
	}
}

// Label returns the card title for the method.
func (m Method) Label() string {
	switch m {
	case MethodMobile:
		return "To Mobile Number"
	case MethodUPI:
		return "To UPI ID"
	case MethodBank:
		return "To Bank Account"
	default:
		return ""
	}
}

// Session is the logged-in user for the current flow. The username is
// display only.
type Session struct {
	Username string
}

// Receiver is the resolved payee profile.
type Receiver struct {
	Name    string
	Bank    string
	UPI     string
	Mobile  string
	Account string
}

// Identifier returns the identifier shown under the receiver name.
func (r Receiver) Identifier() string {
	switch {
	case r.UPI != "":
		return r.UPI
	case r.Mobile != "":
		return r.Mobile
	case r.Account != "":
		return r.Account
	default:
		return "—"
	}
}

// Initials returns the avatar abbreviation: the first letters of up to two
// name words, upper-cased.
func (r Receiver) Initials() string {
	name := r.Name
	if name == "" {
		name = "PA"
	}
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, word := range words {
		b.WriteString(string([]rune(word)[:1]))
	}
	return strings.ToUpper(b.String())
}

// ForceMode is the developer override for the payment outcome.
type ForceMode string

// Force modes.
const (
	ForceNone     ForceMode = ""
	ForceSuccess  ForceMode = "success"
	ForceModerate ForceMode = "moderate"
	ForceFail     ForceMode = "fail"
)

// OutcomeStatus is the final result of a simulated payment.
type OutcomeStatus string

// Outcome statuses.
const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFail    OutcomeStatus = "fail"
)

// Outcome is the resolved payment result shown on the result screen.
type Outcome struct {
	Status    OutcomeStatus
	Title     string
	Message   string
	Reference string
}

// Succeeded reports whether the payment went through.
func (o Outcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

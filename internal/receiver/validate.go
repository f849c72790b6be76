// Package receiver validates payee input and synthesizes receiver profiles.
package receiver

import (
	"regexp"
	"strings"

	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
)

var (
	mobilePattern  = regexp.MustCompile(`^\d{10}$`)
	upiPattern     = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
	accountPattern = regexp.MustCompile(`^[0-9]{6,20}$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Fields holds the raw per-method inputs on the details screen.
type Fields struct {
	Mobile  string
	UPI     string
	Account string
	IFSC    string
}

// ValidMobile reports whether s is exactly ten digits.
func ValidMobile(s string) bool {
	return mobilePattern.MatchString(strings.TrimSpace(s))
}

// ValidUPI reports whether s looks like a UPI id.
func ValidUPI(s string) bool {
	return upiPattern.MatchString(strings.TrimSpace(s))
}

// ValidAccount reports whether s is a 6 to 20 digit account number.
func ValidAccount(s string) bool {
	return accountPattern.MatchString(strings.TrimSpace(s))
}

// ValidIFSC reports whether s is an IFSC code. Case is ignored.
func ValidIFSC(s string) bool {
	return ifscPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// Request builds a resolver request from the fields for method. It returns
// false while the input for that method is incomplete or malformed.
func Request(method model.Method, f Fields) (service.ReceiverRequest, bool) {
	switch method {
	case model.MethodMobile:
		if !ValidMobile(f.Mobile) {
			return service.ReceiverRequest{}, false
		}
		return service.ReceiverRequest{Method: method, Identifier: strings.TrimSpace(f.Mobile)}, true
	case model.MethodUPI:
		if !ValidUPI(f.UPI) {
			return service.ReceiverRequest{}, false
		}
		return service.ReceiverRequest{Method: method, Identifier: strings.TrimSpace(f.UPI)}, true
	case model.MethodBank:
		if !ValidAccount(f.Account) || !ValidIFSC(f.IFSC) {
			return service.ReceiverRequest{}, false
		}
		return service.ReceiverRequest{
			Method:     method,
			Identifier: strings.TrimSpace(f.Account),
			IFSC:       strings.ToUpper(strings.TrimSpace(f.IFSC)),
		}, true
	default:
		return service.ReceiverRequest{}, false
	}
}

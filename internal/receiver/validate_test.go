package receiver

import (
	"testing"

	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		input string
		want  bool
	}{
		{name: "mobile ok", check: ValidMobile, input: "9876543210", want: true},
		{name: "mobile short", check: ValidMobile, input: "987654321", want: false},
		{name: "mobile long", check: ValidMobile, input: "98765432101", want: false},
		{name: "mobile letters", check: ValidMobile, input: "98765x3210", want: false},
		{name: "upi ok", check: ValidUPI, input: "john.doe@icici", want: true},
		{name: "upi separators", check: ValidUPI, input: "a_b-c@ybl", want: true},
		{name: "upi short local", check: ValidUPI, input: "j@icici", want: false},
		{name: "upi short handle", check: ValidUPI, input: "john@i", want: false},
		{name: "upi digit handle", check: ValidUPI, input: "john@ok1", want: false},
		{name: "upi missing at", check: ValidUPI, input: "johnicici", want: false},
		{name: "account min", check: ValidAccount, input: "123456", want: true},
		{name: "account max", check: ValidAccount, input: "12345678901234567890", want: true},
		{name: "account too short", check: ValidAccount, input: "12345", want: false},
		{name: "account too long", check: ValidAccount, input: "123456789012345678901", want: false},
		{name: "ifsc ok", check: ValidIFSC, input: "HDFC0001234", want: true},
		{name: "ifsc lower", check: ValidIFSC, input: "hdfc0abc123", want: true},
		{name: "ifsc no zero", check: ValidIFSC, input: "HDFC1001234", want: false},
		{name: "ifsc short", check: ValidIFSC, input: "HDFC000123", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.input))
		})
	}
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name   string
		method model.Method
		fields Fields
		want   service.ReceiverRequest
		ok     bool
	}{
		{
			name:   "mobile",
			method: model.MethodMobile,
			fields: Fields{Mobile: "9876543210"},
			want:   service.ReceiverRequest{Method: model.MethodMobile, Identifier: "9876543210"},
			ok:     true,
		},
		{
			name:   "mobile ignores other fields",
			method: model.MethodMobile,
			fields: Fields{Mobile: "98765", UPI: "john@icici"},
			ok:     false,
		},
		{
			name:   "upi",
			method: model.MethodUPI,
			fields: Fields{UPI: "john.doe@icici"},
			want:   service.ReceiverRequest{Method: model.MethodUPI, Identifier: "john.doe@icici"},
			ok:     true,
		},
		{
			name:   "bank upper-cases ifsc",
			method: model.MethodBank,
			fields: Fields{Account: "12345678", IFSC: "hdfc0001234"},
			want:   service.ReceiverRequest{Method: model.MethodBank, Identifier: "12345678", IFSC: "HDFC0001234"},
			ok:     true,
		},
		{
			name:   "bank needs both",
			method: model.MethodBank,
			fields: Fields{Account: "12345678"},
			ok:     false,
		},
		{
			name:   "no method",
			method: model.MethodNone,
			fields: Fields{Mobile: "9876543210"},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Request(tt.method, tt.fields)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

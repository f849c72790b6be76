package receiver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/payarise/payarise/internal/common"
	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
)

// DefaultLatency is the simulated lookup delay.
const DefaultLatency = 350 * time.Millisecond

// LocalResolver derives receiver profiles from the identifier alone after a
// simulated network delay.
type LocalResolver struct {
	latency time.Duration
}

var _ service.ReceiverResolver = (*LocalResolver)(nil)

// NewLocalResolver creates a resolver that waits latency before answering.
func NewLocalResolver(latency time.Duration) *LocalResolver {
	if latency < 0 {
		latency = 0
	}
	return &LocalResolver{latency: latency}
}

// Resolve synthesizes the receiver for req. It returns early with the
// context error if ctx is done before the delay elapses.
func (r *LocalResolver) Resolve(ctx context.Context, req service.ReceiverRequest) (model.Receiver, error) {
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.Receiver{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Synthesize(req)
}

// Synthesize builds the profile for req without any delay.
func Synthesize(req service.ReceiverRequest) (model.Receiver, error) {
	id := strings.TrimSpace(req.Identifier)
	if id == "" {
		return model.Receiver{}, fmt.Errorf("%w: empty identifier", common.ErrInvalidPayload)
	}

	switch req.Method {
	case model.MethodMobile:
		return model.Receiver{
			Name:   "Merchant " + lastN(id, 4),
			Bank:   model.DefaultBank,
			UPI:    id + "@upi",
			Mobile: id,
		}, nil
	case model.MethodUPI:
		local, domain, _ := strings.Cut(id, "@")
		bank := strings.ToUpper(domain)
		if bank == "" {
			bank = model.DefaultBank
		}
		return model.Receiver{
			Name: upiName(local),
			Bank: bank,
			UPI:  id,
		}, nil
	case model.MethodBank:
		if len(req.IFSC) < 4 {
			return model.Receiver{}, fmt.Errorf("%w: IFSC %q too short", common.ErrInvalidPayload, req.IFSC)
		}
		return model.Receiver{
			Name:    "A/C Merchant",
			Bank:    strings.ToUpper(req.IFSC[:4]),
			Account: id,
		}, nil
	default:
		return model.Receiver{}, fmt.Errorf("%w: unknown method %q", common.ErrInvalidPayload, req.Method)
	}
}

func upiName(local string) string {
	return strings.NewReplacer(".", " ", "-", " ", "_", " ").Replace(local)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

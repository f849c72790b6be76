package risk

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/payarise/payarise/internal/model"
)

// UnexpectedDeclineRate is the chance a high-confidence payment still fails.
const UnexpectedDeclineRate = 0.02

// DefaultOutcomeProb is used when a payment is resolved without a prediction.
const DefaultOutcomeProb = 80

// Payment is what the outcome resolver needs to know about one transfer.
type Payment struct {
	Prediction   *model.Prediction
	Amount       string
	ReceiverName string
	ForceMode    model.ForceMode
}

// OutcomeResolver decides whether a simulated payment succeeds.
type OutcomeResolver struct {
	rng *rand.Rand
	now func() time.Time
	mu  sync.Mutex
}

// NewOutcomeResolver creates a resolver. Nil rng or now fall back to a
// clock-seeded source and time.Now.
func NewOutcomeResolver(rng *rand.Rand, now func() time.Time) *OutcomeResolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &OutcomeResolver{rng: rng, now: now}
}

// Resolve computes the final outcome and its message.
func (r *OutcomeResolver) Resolve(p Payment) model.Outcome {
	prob := float64(DefaultOutcomeProb)
	if p.Prediction != nil {
		prob = float64(p.Prediction.SuccessProb)
	}

	if r.decide(prob, p.ForceMode) == model.OutcomeSuccess {
		ref := Reference(r.now())
		return model.Outcome{
			Status:    model.OutcomeSuccess,
			Title:     "Payment Successful",
			Message:   fmt.Sprintf("Paid ₹%s to %s • Ref %s", p.Amount, p.ReceiverName, ref),
			Reference: ref,
		}
	}

	return model.Outcome{
		Status:  model.OutcomeFail,
		Title:   "Payment Failed",
		Message: FailureMessage(prob),
	}
}

func (r *OutcomeResolver) decide(prob float64, force model.ForceMode) model.OutcomeStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch force {
	case model.ForceSuccess:
		return model.OutcomeSuccess
	case model.ForceFail:
		return model.OutcomeFail
	case model.ForceModerate:
		return r.coinFlip()
	}

	switch BandOf(prob) {
	case BandLow:
		return model.OutcomeFail
	case BandModerate:
		return r.coinFlip()
	default:
		if r.rng.Float64() < UnexpectedDeclineRate {
			return model.OutcomeFail
		}
		return model.OutcomeSuccess
	}
}

func (r *OutcomeResolver) coinFlip() model.OutcomeStatus {
	if r.rng.Float64() < 0.5 {
		return model.OutcomeFail
	}
	return model.OutcomeSuccess
}

// Reference builds a transaction reference from a timestamp: "TX" followed
// by the last eight characters of the upper-cased base-36 unix millis.
func Reference(t time.Time) string {
	encoded := strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
	if len(encoded) > 8 {
		encoded = encoded[len(encoded)-8:]
	}
	return "TX" + encoded
}

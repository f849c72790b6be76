package risk

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/payarise/payarise/internal/model"
	"github.com/payarise/payarise/internal/service"
)

// Source says where a prediction's base probability came from.
type Source int

// Prediction sources.
const (
	SourceBackend Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "backend"
}

// Result is a normalized prediction tagged with its source. Err holds the
// backend failure that was recovered from when Source is SourceFallback.
type Result struct {
	Err        error
	Prediction model.Prediction
	Source     Source
}

// Recovered reports whether the prediction came from the local fallback.
func (r Result) Recovered() bool {
	return r.Source == SourceFallback
}

// PredictionClient wraps a backend Predictor with perturbation, reason
// banding and the local fallback. It never returns an error.
type PredictionClient struct {
	predictor service.Predictor
	rng       *rand.Rand
	mu        sync.Mutex
}

// NewPredictionClient creates a client. A nil rng is seeded from the clock.
func NewPredictionClient(predictor service.Predictor, rng *rand.Rand) *PredictionClient {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PredictionClient{
		predictor: predictor,
		rng:       rng,
	}
}

// Predict returns a prediction for payload, degrading silently to the local
// baseline when the backend call fails.
func (c *PredictionClient) Predict(ctx context.Context, payload model.PredictionPayload) Result {
	var err error
	if c.predictor != nil {
		var resp model.PredictResponse
		resp, err = c.predictor.Predict(ctx, payload)
		if err == nil {
			base := float64(DefaultBackendProb)
			if resp.SuccessProb != nil && *resp.SuccessProb != 0 {
				base = *resp.SuccessProb
			}
			return Result{
				Prediction: c.normalize(base),
				Source:     SourceBackend,
			}
		}
		slog.Warn("Prediction backend failed, using local estimate",
			"error", err,
			"method", payload.Method,
			"amount", payload.Amount)
	}

	return Result{
		Err:        err,
		Prediction: c.normalize(Baseline(payload.Amount)),
		Source:     SourceFallback,
	}
}

// normalize perturbs base and attaches the reason for the final value.
func (c *PredictionClient) normalize(base float64) model.Prediction {
	c.mu.Lock()
	p := Perturb(base, c.rng)
	c.mu.Unlock()

	return model.Prediction{
		SuccessProb: p,
		Reason:      Reason(float64(p)),
	}
}

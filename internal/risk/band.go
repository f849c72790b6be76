// Package risk turns backend success probabilities into what the user sees:
// perturbed percentages, reason text, and the final payment outcome.
package risk

import (
	"math"
	"math/rand"
)

// Band is a success probability range.
type Band int

// Probability bands.
const (
	BandLow Band = iota
	BandModerate
	BandHigh
)

// Band edges, in percent.
const (
	LowCeiling      = 30
	ModerateCeiling = 60
)

// Perturbation and clamp limits applied to every displayed probability.
const (
	MaxNoise = 10
	MinProb  = 5
	MaxProb  = 95
)

// Local baselines used when the backend cannot be reached.
const (
	HighAmountThreshold = 5000
	HighAmountBaseline  = 70
	LowAmountBaseline   = 90
)

// DefaultBackendProb is used when /predict omits success_prob.
const DefaultBackendProb = 50

// BandOf places a probability in its band. Both edges of the moderate band
// are inclusive of 30 and 60.
func BandOf(p float64) Band {
	switch {
	case p < LowCeiling:
		return BandLow
	case p <= ModerateCeiling:
		return BandModerate
	default:
		return BandHigh
	}
}

// Reason returns the reason text for a probability.
func Reason(p float64) string {
	switch BandOf(p) {
	case BandLow:
		return "Low chance; bank/network may fail"
	case BandModerate:
		return "Moderate chance; could fail during load"
	default:
		return "High chance of success"
	}
}

// FailureMessage returns the result-screen explanation for a failed payment
// in the given probability band.
func FailureMessage(p float64) string {
	switch BandOf(p) {
	case BandLow:
		return "Issuer bank not responding."
	case BandModerate:
		return "UPI switch timeout during peak load."
	default:
		return "Unexpected bank decline."
	}
}

// Perturb adds uniform integer noise in [-MaxNoise, MaxNoise], rounds, and
// clamps to [MinProb, MaxProb].
func Perturb(p float64, rng *rand.Rand) int {
	noise := rng.Intn(2*MaxNoise+1) - MaxNoise
	v := math.Round(p + float64(noise))
	return int(math.Max(MinProb, math.Min(MaxProb, v)))
}

// Baseline is the simulated success probability for an amount when the
// backend is unreachable.
func Baseline(amount float64) float64 {
	if amount > HighAmountThreshold {
		return HighAmountBaseline
	}
	return LowAmountBaseline
}

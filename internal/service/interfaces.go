// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/payarise/payarise/internal/model"
)

// Predictor asks the backend for a success probability.
type Predictor interface {
	Predict(ctx context.Context, payload model.PredictionPayload) (model.PredictResponse, error)
}

// TransactionLogger records a prediction with its result.
type TransactionLogger interface {
	LogTransaction(ctx context.Context, entry model.LogEntry) error
}

// StatsFetcher loads the dashboard aggregates.
type StatsFetcher interface {
	GetStats(ctx context.Context) (model.Stats, error)
}

// Backend is the full contract of the prediction service.
type Backend interface {
	Predictor
	TransactionLogger
	StatsFetcher
}

// ReceiverRequest is a validated lookup for one transfer method.
type ReceiverRequest struct {
	Method     model.Method
	Identifier string // mobile number, UPI id or account number
	IFSC       string // bank transfers only
}

// ReceiverResolver turns a validated request into a payee profile.
type ReceiverResolver interface {
	Resolve(ctx context.Context, req ReceiverRequest) (model.Receiver, error)
}

// RetryOptions configures retry behavior for backend calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

package dashboard

import "github.com/payarise/payarise/internal/model"

// statsMsg carries the result of one stats refresh. Only the latest
// refresh is applied.
type statsMsg struct {
	err   error
	stats model.Stats
	gen   uint64
}

// predictedMsg carries the backend's answer to a form submission.
type predictedMsg struct {
	err     error
	resp    model.PredictResponse
	payload model.PredictionPayload
}

// loggedMsg reports whether the submitted prediction was logged.
type loggedMsg struct {
	err error
}

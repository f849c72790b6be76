package model

// Fixed context values the mobile flow sends with every prediction.
const (
	DefaultBank      = "SBI"
	DefaultNetwork   = "Average"
	DefaultTimeOfDay = "Evening"
)

// PredictionPayload is the context sent to the predictor.
type PredictionPayload struct {
	Method       string  `json:"method"`
	Bank         string  `json:"bank"`
	Network      string  `json:"network"`
	TimeOfDay    string  `json:"time_of_day"`
	Amount       float64 `json:"amount"`
	Retries      int     `json:"retries"`
	PastFailures int     `json:"past_failures"`
}

// PredictResponse is the backend's /predict reply. SuccessProb is a
// pointer so an absent field can be told apart from zero.
type PredictResponse struct {
	SuccessProb *float64 `json:"success_prob"`
	Reason      string   `json:"reason,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// Prediction is the normalized predictor output consumed by the UI.
type Prediction struct {
	Reason      string
	SuccessProb int
}

// LogEntry is the body posted to /log: the payload merged with the result.
type LogEntry struct {
	PredictionPayload
	Status      string  `json:"status"`
	Reason      string  `json:"reason"`
	SuccessProb float64 `json:"success_prob"`
}

// NewLogEntry merges a payload with the backend's reply to it. An absent
// success probability is logged as zero.
func NewLogEntry(p PredictionPayload, r PredictResponse) LogEntry {
	entry := LogEntry{
		PredictionPayload: p,
		Status:            r.Status,
		Reason:            r.Reason,
	}
	if r.SuccessProb != nil {
		entry.SuccessProb = *r.SuccessProb
	}
	return entry
}

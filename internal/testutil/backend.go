package testutil

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/payarise/payarise/internal/model"
)

// FakeBackend is an in-memory stand-in for the prediction service.
type FakeBackend struct {
	Server *httptest.Server

	// PredictFunc computes the /predict reply. Nil means a fixed 80%.
	PredictFunc func(model.PredictionPayload) model.PredictResponse

	logged       []model.LogEntry
	requestIDs   []string
	predictCalls int
	failPredict  int
	failStats    int
	failLog      int
	mu           sync.Mutex
}

// NewFakeBackend starts a fake backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{}

	r := chi.NewRouter()
	r.Use(fb.recordRequestID)
	r.Post("/predict", fb.handlePredict)
	r.Post("/log", fb.handleLog)
	r.Get("/stats", fb.handleStats)

	fb.Server = httptest.NewServer(r)
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the base URL of the fake backend.
func (fb *FakeBackend) URL() string {
	return fb.Server.URL
}

// FailPredict makes the next n /predict calls answer 500.
func (fb *FakeBackend) FailPredict(n int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failPredict = n
}

// FailStats makes the next n /stats calls answer 500.
func (fb *FakeBackend) FailStats(n int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failStats = n
}

// FailLog makes the next n /log calls answer 500.
func (fb *FakeBackend) FailLog(n int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failLog = n
}

// Logged returns a copy of every entry posted to /log.
func (fb *FakeBackend) Logged() []model.LogEntry {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]model.LogEntry(nil), fb.logged...)
}

// PredictCalls returns how many /predict requests were served.
func (fb *FakeBackend) PredictCalls() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.predictCalls
}

// RequestIDs returns the X-Request-ID header of every request seen.
func (fb *FakeBackend) RequestIDs() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.requestIDs...)
}

func (fb *FakeBackend) recordRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.requestIDs = append(fb.requestIDs, r.Header.Get("X-Request-ID"))
		fb.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (fb *FakeBackend) handlePredict(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	fb.predictCalls++
	fail := fb.failPredict > 0
	if fail {
		fb.failPredict--
	}
	fb.mu.Unlock()

	if fail {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
		return
	}

	var payload model.PredictionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := fixedPrediction(80)
	if fb.PredictFunc != nil {
		resp = fb.PredictFunc(payload)
	}
	writeJSON(w, resp)
}

func (fb *FakeBackend) handleLog(w http.ResponseWriter, r *http.Request) {
	var entry model.LogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fb.mu.Lock()
	fail := fb.failLog > 0
	if fail {
		fb.failLog--
	} else {
		fb.logged = append(fb.logged, entry)
	}
	fb.mu.Unlock()

	if fail {
		http.Error(w, "database locked", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Transaction logged successfully"})
}

func (fb *FakeBackend) handleStats(w http.ResponseWriter, _ *http.Request) {
	fb.mu.Lock()
	fail := fb.failStats > 0
	if fail {
		fb.failStats--
	}
	entries := append([]model.LogEntry(nil), fb.logged...)
	fb.mu.Unlock()

	if fail {
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, Aggregate(entries))
}

// Aggregate computes /stats the way the real service does: average
// success per bank and per method rounded to two decimals, and a count
// per reason, each grouped and ordered by key.
func Aggregate(entries []model.LogEntry) model.Stats {
	type acc struct {
		sum   float64
		count int
	}
	banks := map[string]*acc{}
	methods := map[string]*acc{}
	reasons := map[string]int{}

	for _, e := range entries {
		if banks[e.Bank] == nil {
			banks[e.Bank] = &acc{}
		}
		banks[e.Bank].sum += e.SuccessProb
		banks[e.Bank].count++

		if methods[e.Method] == nil {
			methods[e.Method] = &acc{}
		}
		methods[e.Method].sum += e.SuccessProb
		methods[e.Method].count++

		reasons[e.Reason]++
	}

	stats := model.Stats{
		BankStats:      []model.BankStat{},
		MethodStats:    []model.MethodStat{},
		FailureReasons: []model.FailureReason{},
	}
	for _, bank := range sortedKeys(banks) {
		a := banks[bank]
		stats.BankStats = append(stats.BankStats, model.BankStat{Bank: bank, AvgSuccess: round2(a.sum / float64(a.count))})
	}
	for _, method := range sortedKeys(methods) {
		a := methods[method]
		stats.MethodStats = append(stats.MethodStats, model.MethodStat{Method: method, AvgSuccess: round2(a.sum / float64(a.count))})
	}
	for _, reason := range sortedKeys(reasons) {
		stats.FailureReasons = append(stats.FailureReasons, model.FailureReason{Reason: reason, Count: reasons[reason]})
	}
	return stats
}

func fixedPrediction(p float64) model.PredictResponse {
	return model.PredictResponse{
		SuccessProb: &p,
		Status:      "low-risk",
		Reason:      "High chance of success",
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

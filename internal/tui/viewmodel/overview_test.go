package viewmodel

import (
	"testing"

	"github.com/payarise/payarise/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleStats() model.Stats {
	return model.Stats{
		BankStats: []model.BankStat{
			{Bank: "HDFC", AvgSuccess: 82.5},
			{Bank: "ICICI", AvgSuccess: 70},
			{Bank: "SBI", AvgSuccess: 64.4},
		},
		MethodStats: []model.MethodStat{
			{Method: "bank", AvgSuccess: 60},
			{Method: "upi", AvgSuccess: 90},
		},
		FailureReasons: []model.FailureReason{
			{Reason: "Low chance; bank/network may fail", Count: 4},
			{Reason: "High chance of success", Count: 9},
			{Reason: "Could FAIL during load", Count: 2},
		},
	}
}

func TestNewOverview(t *testing.T) {
	o := NewOverview(sampleStats())

	assert.InDelta(t, 72.3, o.AvgSuccess, 0.0001)
	assert.Equal(t, "72.3%", o.AvgLabel())
	assert.Equal(t, 3, o.BanksReported)
	assert.Equal(t, 2, o.HighRisk)
	assert.True(t, o.HasData())
}

func TestNewOverview_Empty(t *testing.T) {
	o := NewOverview(model.Stats{})

	assert.Zero(t, o.AvgSuccess)
	assert.Equal(t, "0.0%", o.AvgLabel())
	assert.Zero(t, o.BanksReported)
	assert.False(t, o.HasData())
}

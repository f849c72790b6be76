// Package viewmodel holds the pure display data behind the TUI components.
package viewmodel

import (
	"fmt"
	"strings"

	"github.com/payarise/payarise/internal/model"
)

// OverviewView is the summary row above the dashboard charts.
type OverviewView struct {
	AvgSuccess    float64
	BanksReported int
	HighRisk      int
}

// NewOverview derives the summary figures from backend stats. High risk
// counts failure reasons that mention "fail".
func NewOverview(stats model.Stats) OverviewView {
	var sum float64
	for _, b := range stats.BankStats {
		sum += b.AvgSuccess
	}
	n := len(stats.BankStats)

	highRisk := 0
	for _, r := range stats.FailureReasons {
		if strings.Contains(strings.ToLower(r.Reason), "fail") {
			highRisk++
		}
	}

	return OverviewView{
		AvgSuccess:    sum / float64(max(n, 1)),
		BanksReported: n,
		HighRisk:      highRisk,
	}
}

// AvgLabel formats the average success with one decimal.
func (o OverviewView) AvgLabel() string {
	return fmt.Sprintf("%.1f%%", o.AvgSuccess)
}

// HasData reports whether any bank has reported yet.
func (o OverviewView) HasData() bool {
	return o.BanksReported > 0
}

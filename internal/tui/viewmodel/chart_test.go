package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharts(t *testing.T) {
	stats := sampleStats()

	bank := BankChart(stats)
	assert.Equal(t, []string{"HDFC", "ICICI", "SBI"}, bank.Labels)
	assert.InDelta(t, 0.825, bank.Fraction(0), 0.0001)

	method := MethodChart(stats)
	assert.Equal(t, 2, method.Len())
	assert.InDelta(t, 0.4, method.Fraction(0), 0.0001)
	assert.InDelta(t, 0.6, method.Fraction(1), 0.0001)

	reasons := ReasonChart(stats)
	assert.Equal(t, []float64{4, 9, 2}, reasons.Values)
	assert.InDelta(t, 1.0, reasons.Fraction(1), 0.0001)
	assert.InDelta(t, 2.0/9, reasons.Fraction(2), 0.0001)
}

func TestChartView_Fraction_Edges(t *testing.T) {
	tests := []struct {
		name  string
		chart ChartView
		index int
		want  float64
	}{
		{name: "out of range", chart: ChartView{Labels: []string{"a"}, Values: []float64{50}}, index: 3, want: 0},
		{name: "clamped percent", chart: ChartView{Labels: []string{"a"}, Values: []float64{140}}, index: 0, want: 1},
		{name: "zero share total", chart: ChartView{Kind: ChartShare, Labels: []string{"a"}, Values: []float64{0}}, index: 0, want: 0},
		{name: "zero counts", chart: ChartView{Kind: ChartCount, Labels: []string{"a"}, Values: []float64{0}}, index: 0, want: 0},
		{name: "mismatched lengths", chart: ChartView{Labels: []string{"a", "b"}, Values: []float64{10}}, index: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.chart.Fraction(tt.index), 0.0001)
		})
	}
	assert.True(t, ChartView{}.IsEmpty())
}

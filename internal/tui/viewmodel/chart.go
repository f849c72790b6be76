package viewmodel

import "github.com/payarise/payarise/internal/model"

// ChartKind selects how a chart scales its values.
type ChartKind int

const (
	// ChartPercent draws values against a fixed 0-100 scale.
	ChartPercent ChartKind = iota
	// ChartShare draws each value as its share of the total.
	ChartShare
	// ChartCount draws values against the largest value.
	ChartCount
)

// ChartView is one chart's labels and values.
type ChartView struct {
	Title  string
	Labels []string
	Values []float64
	Kind   ChartKind
}

// Len returns the number of data points.
func (c ChartView) Len() int {
	return min(len(c.Labels), len(c.Values))
}

// IsEmpty reports whether there is nothing to draw.
func (c ChartView) IsEmpty() bool {
	return c.Len() == 0
}

// Fraction returns how much of the bar at i is filled, in [0,1].
func (c ChartView) Fraction(i int) float64 {
	if i < 0 || i >= c.Len() {
		return 0
	}
	v := c.Values[i]
	var f float64
	switch c.Kind {
	case ChartPercent:
		f = v / 100
	case ChartShare:
		total := 0.0
		for _, x := range c.Values {
			total += x
		}
		if total == 0 {
			return 0
		}
		f = v / total
	default:
		top := 0.0
		for _, x := range c.Values {
			top = max(top, x)
		}
		if top == 0 {
			return 0
		}
		f = v / top
	}
	return max(0, min(1, f))
}

// BankChart is the bank-wise success rate chart.
func BankChart(stats model.Stats) ChartView {
	c := ChartView{Title: "Bank-wise Success Rate", Kind: ChartPercent}
	for _, b := range stats.BankStats {
		c.Labels = append(c.Labels, b.Bank)
		c.Values = append(c.Values, b.AvgSuccess)
	}
	return c
}

// MethodChart is the method-wise success share chart.
func MethodChart(stats model.Stats) ChartView {
	c := ChartView{Title: "Method-wise Success", Kind: ChartShare}
	for _, m := range stats.MethodStats {
		c.Labels = append(c.Labels, m.Method)
		c.Values = append(c.Values, m.AvgSuccess)
	}
	return c
}

// ReasonChart is the failure reason count chart.
func ReasonChart(stats model.Stats) ChartView {
	c := ChartView{Title: "Failure Reasons", Kind: ChartCount}
	for _, r := range stats.FailureReasons {
		c.Labels = append(c.Labels, r.Reason)
		c.Values = append(c.Values, float64(r.Count))
	}
	return c
}

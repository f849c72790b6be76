package model

// BankStat is the average success probability for one bank.
type BankStat struct {
	Bank       string  `json:"bank"`
	AvgSuccess float64 `json:"avg_success"`
}

// MethodStat is the average success probability for one transfer method.
type MethodStat struct {
	Method     string  `json:"method"`
	AvgSuccess float64 `json:"avg_success"`
}

// FailureReason counts logged transactions per reason text.
type FailureReason struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Stats is the /stats aggregate.
type Stats struct {
	BankStats      []BankStat      `json:"bank_stats"`
	MethodStats    []MethodStat    `json:"method_stats"`
	FailureReasons []FailureReason `json:"failure_reasons"`
}

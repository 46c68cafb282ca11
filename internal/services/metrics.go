package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// surveysTotal counts scored submissions by tier.
	surveysTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellbeing_surveys_total",
			Help: "Total number of scored survey submissions.",
		},
		[]string{"risk_level"},
	)

	// completionsTotal counts completion calls by outcome (ok, empty, error).
	completionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellbeing_completions_total",
			Help: "Total number of chat completion calls.",
		},
		[]string{"outcome"},
	)

	// ledgerCalls counts outbound ledger calls by action and outcome.
	ledgerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellbeing_ledger_calls_total",
			Help: "Total number of registration/logging calls.",
		},
		[]string{"action", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(surveysTotal, completionsTotal, ledgerCalls)
}

const (
	outcomeOK       = "ok"
	outcomeEmpty    = "empty"
	outcomeError    = "error"
	outcomeDisabled = "disabled"
)

package observability

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values shared by the domain counters.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeCached   = "cached"
	OutcomeError    = "error"
)

var (
	// Categorizations counts classification attempts by outcome
	// (ok, cached, fallback).
	Categorizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_categorizations_total",
			Help: "Document categorizations by outcome.",
		},
		[]string{"outcome"},
	)

	// Completions counts answer completions by outcome (ok, error).
	Completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_completions_total",
			Help: "Answer completions by outcome.",
		},
		[]string{"outcome"},
	)

	// Documents gauges the number of documents in the store.
	Documents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "coach_documents",
			Help: "Number of ingested documents.",
		},
	)

	// AskRejected counts questions refused because another one was in flight.
	AskRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coach_ask_rejected_total",
			Help: "Questions rejected while a previous question was in flight.",
		},
	)
)

func init() {
	prometheus.MustRegister(Categorizations, Completions, Documents, AskRejected)
}

// ABOUTME: Prometheus metrics for pipeline outcomes, tokens, and USD cost
// ABOUTME: Registered via promauto and exposed on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the collector for the pipeline service.
type Metrics struct {
	pipelineRuns *prometheus.CounterVec
	llmTokens    *prometheus.CounterVec
	llmCostUSD   prometheus.Counter
}

// Outcome labels for pipelineRuns.
const (
	OutcomeCompleted = "completed"
	OutcomeBlocked   = "blocked"
	OutcomeFailed    = "failed"
)

// New registers and returns the collector. Must be called at most once per
// process (promauto registers globally).
func New() *Metrics {
	return &Metrics{
		pipelineRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "vidprep",
				Name:      "pipeline_runs_total",
				Help:      "Total pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		llmTokens: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "vidprep",
				Name:      "llm_tokens_total",
				Help:      "Total LLM tokens consumed by direction",
			},
			[]string{"direction"},
		),
		llmCostUSD: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "vidprep",
				Name:      "llm_cost_usd_total",
				Help:      "Accumulated LLM spend in USD",
			},
		),
	}
}

// ObserveRun records one pipeline run outcome.
func (m *Metrics) ObserveRun(outcome string) {
	if m == nil {
		return
	}
	m.pipelineRuns.WithLabelValues(outcome).Inc()
}

// ObserveCall records the token and cost footprint of one external call.
func (m *Metrics) ObserveCall(inputTokens, outputTokens int, costUSD float64) {
	if m == nil {
		return
	}
	m.llmTokens.WithLabelValues("input").Add(float64(inputTokens))
	m.llmTokens.WithLabelValues("output").Add(float64(outputTokens))
	m.llmCostUSD.Add(costUSD)
}

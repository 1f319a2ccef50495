package triage

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	EvaluationsTotal *prometheus.CounterVec
	FallbacksTotal   prometheus.Counter
	EvalDuration     prometheus.Histogram
	EvalTokens       prometheus.Histogram
	EvalMatches      prometheus.Histogram
	EvalResults      prometheus.Histogram
	SubmitsTotal     *prometheus.CounterVec
	EscalationsTotal *prometheus.CounterVec
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicktriage_evaluations_total",
			Help: "Total engine evaluations by urgency verdict.",
		}, []string{"urgent"}),
		FallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quicktriage_fallbacks_total",
			Help: "Evaluations where no keyword matched and fallback conditions were used.",
		}),
		EvalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicktriage_evaluation_duration_seconds",
			Help:    "Duration of engine evaluations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1us .. ~260ms
		}),
		EvalTokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicktriage_evaluation_tokens",
			Help:    "Tokens extracted per evaluation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1 .. 512
		}),
		EvalMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicktriage_evaluation_matches",
			Help:    "Keyword matches per evaluation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8), // 1 .. 128
		}),
		EvalResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicktriage_evaluation_results",
			Help:    "Ranked conditions returned per evaluation.",
			Buckets: prometheus.LinearBuckets(0, 1, 4), // 0 .. 3
		}),
		SubmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicktriage_submits_total",
			Help: "Total report submissions by result.",
		}, []string{"result"}),
		EscalationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicktriage_escalations_total",
			Help: "Urgent report escalations by delivery result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.EvaluationsTotal,
		m.FallbacksTotal,
		m.EvalDuration,
		m.EvalTokens,
		m.EvalMatches,
		m.EvalResults,
		m.SubmitsTotal,
		m.EscalationsTotal,
	)

	return m
}

// Hooks returns EngineHooks that record evaluation metrics.
func (m *Metrics) Hooks() EngineHooks {
	return EngineHooks{
		OnEvaluate: func(e *Evaluation) {
			urgent := "false"
			if e.IsUrgent {
				urgent = "true"
			}
			m.EvaluationsTotal.WithLabelValues(urgent).Inc()
			if e.Fallback {
				m.FallbacksTotal.Inc()
			}
			m.EvalDuration.Observe(e.Duration)
			m.EvalTokens.Observe(float64(e.TokenCount))
			m.EvalMatches.Observe(float64(e.MatchCount))
			m.EvalResults.Observe(float64(len(e.Results)))
		},
	}
}

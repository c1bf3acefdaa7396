package matching

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics holds the prometheus collectors the matching engine updates
// on its hot path. Grouping them in one struct, rather than relying on the
// global default registry, lets tests construct an isolated engine without
// colliding on prometheus' process-wide registry.
type EngineMetrics struct {
	OrdersAdmitted  *prometheus.CounterVec
	OrdersRejected  prometheus.Counter
	MatchesExecuted prometheus.Counter
	QuantityMatched prometheus.Counter

	FallbackEscalations  prometheus.Counter
	BackgroundHandoffs   prometheus.Counter
	MatchIterationCapHit prometheus.Counter

	AdmitLatency prometheus.Histogram
}

// NewEngineMetrics constructs and registers a fresh set of collectors
// against the given registerer. Pass prometheus.NewRegistry() in tests to
// avoid duplicate-registration panics across test runs.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		OrdersAdmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchcore_orders_admitted_total",
			Help: "Total number of orders accepted by the engine, by side.",
		}, []string{"side"}),
		OrdersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_orders_rejected_total",
			Help: "Total number of orders rejected at admission for invalid qty/price.",
		}),
		MatchesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_matches_total",
			Help: "Total number of successful two-sided quantity decrements.",
		}),
		QuantityMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_quantity_matched_total",
			Help: "Total matched quantity, counted once per match (the quantity taken from each side).",
		}),
		FallbackEscalations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_insert_fallback_total",
			Help: "Total number of inserts that exhausted the primary retry budget.",
		}),
		BackgroundHandoffs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_insert_background_handoff_total",
			Help: "Total number of inserts handed off to the background inserter.",
		}),
		MatchIterationCapHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchcore_match_iteration_cap_total",
			Help: "Total number of match_slot invocations that exhausted MATCH_ITERATIONS.",
		}),
		AdmitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchcore_admit_latency_seconds",
			Help:    "Latency of a single admit_order call, including its match sweep.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.OrdersAdmitted,
		m.OrdersRejected,
		m.MatchesExecuted,
		m.QuantityMatched,
		m.FallbackEscalations,
		m.BackgroundHandoffs,
		m.MatchIterationCapHit,
		m.AdmitLatency,
	)

	return m
}

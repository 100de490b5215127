package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters distinguishing degraded computation paths from clean ones; a
// best-effort 1:1 conversion must never look like a true zero balance in
// telemetry.
var (
	DegradedConversions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novira_degraded_conversions_total",
		Help: "Currency conversions that fell back to a 1:1 rate because no rate was known.",
	})

	MalformedSplitsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novira_malformed_splits_skipped_total",
		Help: "Splits excluded from aggregation because they failed validation.",
	})

	RecomputeRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novira_recompute_runs_total",
		Help: "Balance recomputations executed after coalescing change notifications.",
	})

	RecomputeTriggers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novira_recompute_triggers_total",
		Help: "Raw change notifications received, before coalescing.",
	})

	SettlementsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novira_settlements_applied_total",
		Help: "Splits marked paid.",
	})

	SettlementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "novira_settlement_failures_total",
		Help: "Split settlements that failed and were reported back to the caller.",
	})
)

// Package telemetry holds the Prometheus collectors recorded by the search
// and saved filter services.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aevon-lab/faultline/internal/core/aggregation"
)

const namespace = "faultline"

var policyReasons = []string{
	aggregation.MsgCountExceeded,
	aggregation.MsgDuplicate,
	aggregation.MsgDistinctCountExceeded,
	aggregation.MsgTermsCountExceeded,
	aggregation.MsgDisallowedField,
}

// Outcome labels for processed queries and aggregation requests.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Source labels for premium feature usage.
const (
	SourceQuery       = "query"
	SourceAggregation = "aggregation"
)

// Metrics groups the counters recorded per request. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	queries               *prometheus.CounterVec
	aggregations          *prometheus.CounterVec
	premiumUsage          *prometheus.CounterVec
	dynamicFields         prometheus.Counter
	aggregationRejections *prometheus.CounterVec
	cacheLookups          *prometheus.CounterVec
}

// NewMetrics registers the collectors with r.
func NewMetrics(r prometheus.Registerer) *Metrics {
	return &Metrics{
		queries: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_processed_total",
			Help:      "Total number of search filters processed, by outcome.",
		}, []string{"outcome"}),
		aggregations: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregations_compiled_total",
			Help:      "Total number of aggregation requests compiled, by outcome.",
		}, []string{"outcome"}),
		premiumUsage: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "premium_feature_usage_total",
			Help:      "Total number of requests touching premium fields, by source.",
		}, []string{"source"}),
		dynamicFields: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dynamic_field_queries_total",
			Help:      "Total number of search filters referencing extended data or reference fields.",
		}),
		aggregationRejections: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_rejections_total",
			Help:      "Total number of aggregation requests rejected by policy, by reason.",
		}, []string{"reason"}),
		cacheLookups: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_cache_lookups_total",
			Help:      "Total number of plan cache lookups, by result.",
		}, []string{"result"}),
	}
}

// ObserveQuery records one processed search filter.
func (m *Metrics) ObserveQuery(valid, premium, dynamic bool) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(outcome(valid)).Inc()
	if premium {
		m.premiumUsage.WithLabelValues(SourceQuery).Inc()
	}
	if dynamic {
		m.dynamicFields.Inc()
	}
}

// ObserveAggregation records one compiled aggregation request. reason is the
// rejection message and is ignored for valid requests.
func (m *Metrics) ObserveAggregation(valid, premium bool, reason string) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(outcome(valid)).Inc()
	if premium {
		m.premiumUsage.WithLabelValues(SourceAggregation).Inc()
	}
	if !valid {
		m.aggregationRejections.WithLabelValues(rejectionReason(reason)).Inc()
	}
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

func outcome(valid bool) string {
	if valid {
		return OutcomeValid
	}
	return OutcomeInvalid
}

// rejectionReason keeps label cardinality bounded: syntax errors embed the
// offending input, policy messages are fixed strings.
func rejectionReason(msg string) string {
	for _, known := range policyReasons {
		if msg == known {
			return msg
		}
	}
	return "malformed"
}

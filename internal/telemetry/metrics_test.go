package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/faultline/internal/core/aggregation"
)

func TestMetrics_ObserveQuery(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveQuery(true, true, true)
	m.ObserveQuery(true, false, false)
	m.ObserveQuery(false, false, false)

	require.Equal(t, 2.0, testutil.ToFloat64(m.queries.WithLabelValues(OutcomeValid)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.queries.WithLabelValues(OutcomeInvalid)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.premiumUsage.WithLabelValues(SourceQuery)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.dynamicFields))
}

func TestMetrics_ObserveAggregation(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveAggregation(true, true, "")
	m.ObserveAggregation(false, false, aggregation.MsgDuplicate)
	m.ObserveAggregation(false, false, "Invalid type: foo")
	m.ObserveAggregation(false, false, "Invalid aggregation: bar")

	require.Equal(t, 1.0, testutil.ToFloat64(m.premiumUsage.WithLabelValues(SourceAggregation)))
	require.Equal(t, 3.0, testutil.ToFloat64(m.aggregations.WithLabelValues(OutcomeInvalid)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.aggregationRejections.WithLabelValues(aggregation.MsgDuplicate)))
	require.Equal(t, 2.0, testutil.ToFloat64(m.aggregationRejections.WithLabelValues("malformed")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveQuery(true, true, true)
		m.ObserveAggregation(false, true, aggregation.MsgCountExceeded)
		m.ObserveCache(true)
	})
}

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveCache(true)
	m.ObserveCache(false)

	count, err := testutil.GatherAndCount(reg, "faultline_plan_cache_lookups_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// a second registration on the same registry collides
	require.Panics(t, func() { NewMetrics(reg) })
}

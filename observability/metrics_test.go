package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoreMetrics_RecordUpstream(t *testing.T) {
	m := NewStoreMetrics(prometheus.NewRegistry())

	m.RecordUpstream("productos", OutcomeOK, 20*time.Millisecond)
	m.RecordUpstream("productos", OutcomeOK, 30*time.Millisecond)
	m.RecordUpstream("productos", OutcomeError, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("productos", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("productos", OutcomeError)))
}

func TestStoreMetrics_CatalogGaugeOnlyMovesOnSuccess(t *testing.T) {
	m := NewStoreMetrics(prometheus.NewRegistry())

	m.RecordCatalogLoad(OutcomeOK, 42)
	m.RecordCatalogLoad(OutcomeError, 0)

	assert.Equal(t, 42.0, testutil.ToFloat64(m.catalogProducts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogLoads.WithLabelValues(OutcomeError)))
}

func TestStoreMetrics_HTTPDefaults(t *testing.T) {
	m := NewStoreMetrics(prometheus.NewRegistry())

	m.RecordHTTP("GET", "", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "200")))
}

func TestStoreMetrics_NilIsNoop(t *testing.T) {
	var m *StoreMetrics
	assert.NotPanics(t, func() {
		m.RecordUpstream("x", OutcomeOK, 0)
		m.RecordCatalogLoad(OutcomeOK, 1)
		m.RecordSearchLookup(CacheTierMiss)
		m.ObserveEngine("filter", 0)
		m.RecordHTTP("GET", "/", 200, 0)
	})
}

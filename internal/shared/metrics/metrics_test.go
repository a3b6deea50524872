package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	m := New()

	m.RecordEvaluation(OutcomeValid, time.Millisecond)
	m.RecordEvaluation(OutcomeInvalid, time.Millisecond)
	m.RecordEvaluation(OutcomeInvalid, time.Millisecond)
	m.RecordViolations("physical", 3)
	m.RecordViolations("composition", 0)
	m.RecordCacheLookup(CacheHit)
	m.RecordDesignOperation("create")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues(OutcomeValid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.violationsTotal.WithLabelValues("physical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookupsTotal.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.designOperationsTotal.WithLabelValues("create")))
}

func TestSessionGauge(t *testing.T) {
	m := New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.liveSessions))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.RecordEvaluation(OutcomeValid, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "planet_evaluations_total")
}

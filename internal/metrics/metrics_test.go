package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEstimate(t *testing.T) {
	m := New()

	m.RecordEstimate("purchase")
	m.RecordEstimate("purchase")
	m.RecordEstimate("sale")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.estimates.WithLabelValues("purchase")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.estimates.WithLabelValues("sale")))
}

func TestRecordEmail(t *testing.T) {
	m := New()

	m.RecordEmail(EmailSent)
	m.RecordEmail(EmailFailed)
	m.RecordEmail(EmailFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues(EmailSent)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.emails.WithLabelValues(EmailFailed)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordEstimate("purchase")
		m.RecordEmail(EmailSent)
	})
}

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.InstrumentHandler)
	r.Post("/api/estimate", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Handle("/metrics", m.Handler())

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/estimate", "201")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `closing_costs_http_requests_total{method="POST",path="/api/estimate",status="201"} 1`))
}

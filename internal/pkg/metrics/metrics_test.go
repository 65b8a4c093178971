package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDecision(t *testing.T) {
	m := NewMetrics("antifraud")

	m.ObserveDecision("deny", "velocity", 5*time.Millisecond)
	m.ObserveDecision("deny", "velocity", 2*time.Millisecond)
	m.ObserveDecision("approve", "", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decisions.WithLabelValues("deny", "velocity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("approve", "")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecision("approve", "", time.Millisecond)
		m.ObserveChargeback("applied")
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics("antifraud")
	m.ObserveChargeback("applied")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `antifraud_chargebacks_total{outcome="applied"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestEchoMiddleware(t *testing.T) {
	m := NewMetrics("antifraud")
	e := echo.New()
	e.Use(m.EchoMiddleware())
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping", "OK")))
}

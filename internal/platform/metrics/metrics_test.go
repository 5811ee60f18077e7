package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, metric := range f.GetMetric() {
			got := map[string]string{}
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/pets/{petID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, counterValue(t, m, "http_requests_total", map[string]string{
		"route":  "/pets/{petID}",
		"method": "GET",
		"status": "418",
	}))
}

func TestFeedingComputed_ExposedOnHandler(t *testing.T) {
	m := New()
	m.FeedingComputed("dog", "ok")
	m.FeedingComputed("dog", "ok")
	m.FeedingComputed("cat", "missing")

	assert.Equal(t, 2.0, counterValue(t, m, "feeding_recommendations_total", map[string]string{"species": "dog", "outcome": "ok"}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `feeding_recommendations_total{outcome="missing",species="cat"} 1`))
}

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.FeedingComputed("dog", "ok") })
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wmhn-clinic-api/internal/infrastructure/monitoring"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSentryMiddleware_RecoversPanic(t *testing.T) {
	h := NewSentryMiddleware(quietLogger()).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestSentryMiddleware_PassesStatusThrough(t *testing.T) {
	h := NewSentryMiddleware(quietLogger()).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGetSafeHeaders_RedactsCredentials(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer secret")
	headers.Set("Cookie", "session=1")
	headers.Set("Accept", "application/json")

	safe := getSafeHeaders(headers)
	assert.Equal(t, "[FILTERED]", safe["Authorization"])
	assert.Equal(t, "[FILTERED]", safe["Cookie"])
	assert.Equal(t, []string{"application/json"}, safe["Accept"])
}

func TestMetricsMiddleware_LabelsByRouteTemplate(t *testing.T) {
	metrics := monitoring.NewMetrics()

	r := mux.NewRouter()
	r.HandleFunc("/doctors/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Use(NewMetricsMiddleware(metrics).Handle)

	for _, slug := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/doctors/"+slug, nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/doctors/{slug}", "404")))
}

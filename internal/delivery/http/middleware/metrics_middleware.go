package middleware

import (
	"net/http"
	"strconv"
	"time"

	"wmhn-clinic-api/internal/infrastructure/monitoring"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	metrics *monitoring.Metrics
}

func NewMetricsMiddleware(metrics *monitoring.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Handle records request count and latency labelled by route template, so
// /doctors/{slug} is one series regardless of slug.
func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		m.metrics.RequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.metrics.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

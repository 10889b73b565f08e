package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"wmhn-clinic-api/pkg/response"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

type SentryMiddleware struct {
	log *logrus.Logger
}

func NewSentryMiddleware(log *logrus.Logger) *SentryMiddleware {
	return &SentryMiddleware{log: log}
}

// Handle traces each request, reports 5xx responses and recovers panics into
// a 500 response.
func (m *SentryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.CurrentHub().Clone()

		transactionName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		transaction := sentry.StartTransaction(
			sentry.SetHubOnContext(r.Context(), hub),
			transactionName,
			sentry.ContinueFromRequest(r),
		)

		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("Request", map[string]interface{}{
				"Method":  r.Method,
				"URL":     r.URL.String(),
				"Headers": getSafeHeaders(r.Header),
			})
			scope.SetTag("http.method", r.Method)
			scope.SetTag("http.route", r.URL.Path)
		})

		rec := newStatusRecorder(w)
		defer func() {
			if p := recover(); p != nil {
				m.log.Errorf("Recovered panic serving %s: %v", transactionName, p)
				hub.RecoverWithContext(r.Context(), p)
				rec.status = http.StatusInternalServerError
				response.InternalServerError(rec, "")
			}
			if rec.status >= http.StatusInternalServerError {
				hub.CaptureMessage(fmt.Sprintf("%s responded %d", transactionName, rec.status))
			}
			transaction.Status = sentry.HTTPtoSpanStatus(rec.status)
			transaction.Finish()
		}()

		next.ServeHTTP(rec, r.WithContext(transaction.Context()))
	})
}

func getSafeHeaders(h http.Header) map[string]interface{} {
	safe := make(map[string]interface{})
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			safe[k] = "[FILTERED]"
		} else {
			safe[k] = v
		}
	}
	return safe
}

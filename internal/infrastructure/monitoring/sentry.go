package monitoring

import (
	"fmt"
	"time"

	"wmhn-clinic-api/config"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global hub. With no DSN the SDK stays disabled
// and every capture call is a no-op.
func InitSentry(app config.AppConfig, cfg config.SentryConfig) error {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      app.Env,
		Release:          "wmhn-clinic-api@" + app.Version,
		EnableTracing:    cfg.DSN != "",
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}

// FlushSentry waits for buffered events before the process exits.
func FlushSentry() {
	sentry.Flush(2 * time.Second)
}

func CaptureError(err error, context map[string]interface{}) {
	if hub := sentry.CurrentHub(); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range context {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}

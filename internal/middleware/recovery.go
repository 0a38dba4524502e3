package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/repforge/repforge/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery converts handler panics into a 500 response and counts them.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				log.Errorf("http: panic serving %s: %v\n%s", r.URL.Path, rec, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
